package radar_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackradar/console/radar"
	"github.com/stackradar/console/transport"
)

type recordedRequest struct {
	method   string
	path     string
	rawQuery string
	body     []byte
}

// serviceFixture runs a stub backend that answers every request with the
// configured JSON and records what arrived.
type serviceFixture struct {
	service *radar.Service
	last    *recordedRequest
}

func setupService(t *testing.T, status int, responseBody string) *serviceFixture {
	t.Helper()

	f := &serviceFixture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.Path, rawQuery: r.URL.RawQuery}
		rec.body, _ = io.ReadAll(r.Body)
		f.last = &rec
		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)

	service, err := radar.NewService(transport.New(srv.URL))
	require.NoError(t, err)
	f.service = service
	return f
}

func TestNewServiceRequiresClient(t *testing.T) {
	_, err := radar.NewService(nil)
	require.Error(t, err)
}

func TestLoginPostsCredentials(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"token":"tok-123","user":{"id":1,"email":"admin@example.com","is_admin":true}}`)

	resp, err := f.service.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok-123", resp.Token)
	require.True(t, resp.User.IsAdmin)

	require.Equal(t, http.MethodPost, f.last.method)
	require.Equal(t, "/login", f.last.path)

	var sent radar.LoginRequest
	require.NoError(t, json.Unmarshal(f.last.body, &sent))
	require.Equal(t, "admin@example.com", sent.Email)
	require.Equal(t, "secret", sent.Password)
}

func TestListUsersEncodesOptionsInOrder(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"items":[{"id":1}],"page":2,"page_size":20,"total":21}`)

	page, err := f.service.ListUsers(context.Background(), radar.ListUsersOptions{
		ListOptions: radar.ListOptions{Page: 2, PageSize: 20, SortBy: "email", SortOrder: "asc", Search: "smith"},
		Role:        "admin",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	require.Equal(t, "/users", f.last.path)
	require.Equal(t, "page=2&page_size=20&sort_by=email&sort_order=asc&q=smith&role=admin", f.last.rawQuery)
}

func TestListUsersOmitsZeroOptions(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"items":[],"page":1,"page_size":10,"total":0}`)

	_, err := f.service.ListUsers(context.Background(), radar.ListUsersOptions{})
	require.NoError(t, err)
	require.Empty(t, f.last.rawQuery)
}

func TestListTechnologiesCategoryAndStatusFilters(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"items":[],"page":1,"page_size":10,"total":0}`)

	_, err := f.service.ListTechnologies(context.Background(), radar.ListTechnologiesOptions{
		ListOptions: radar.ListOptions{Page: 1},
		Status:      "adopted",
		CategoryID:  4,
	})
	require.NoError(t, err)
	require.Equal(t, "/technologies", f.last.path)
	require.Equal(t, "page=1&status=adopted&category_id=4", f.last.rawQuery)
}

func TestListProjectsTeamFilter(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"items":[],"page":1,"page_size":10,"total":0}`)

	_, err := f.service.ListProjects(context.Background(), radar.ListProjectsOptions{
		Status: "active",
		TeamID: 7,
	})
	require.NoError(t, err)
	require.Equal(t, "/projects", f.last.path)
	require.Equal(t, "status=active&team_id=7", f.last.rawQuery)
}

func TestUpdateTechnologyPutsToEntityPath(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"id":9,"name":"Redis"}`)

	tech, err := f.service.UpdateTechnology(context.Background(), 9, radar.UpdateTechnologyRequest{
		Name: "Redis", CategoryID: 2, Status: "adopted",
	})
	require.NoError(t, err)
	require.Equal(t, int64(9), tech.ID)
	require.Equal(t, http.MethodPut, f.last.method)
	require.Equal(t, "/technologies/9", f.last.path)
}

func TestDeleteUserTreatsNoContentAsSuccess(t *testing.T) {
	f := setupService(t, http.StatusNoContent, "")

	require.NoError(t, f.service.DeleteUser(context.Background(), 3))
	require.Equal(t, http.MethodDelete, f.last.method)
	require.Equal(t, "/users/3", f.last.path)
}

func TestDashboardStatsDecodesAggregates(t *testing.T) {
	f := setupService(t, http.StatusOK, `{
		"overview":{"total_projects":12,"total_technologies":34,"total_teams":5,"total_users":8},
		"technology_usage":[{"name":"Go","project_count":6,"category_name":"Languages"}],
		"project_status_distribution":[{"status":"active","count":9}]
	}`)

	stats, err := f.service.DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/dashboard/stats", f.last.path)
	require.Equal(t, 12, stats.Overview.TotalProjects)
	require.Equal(t, "Go", stats.TechnologyUsage[0].Name)
	require.Equal(t, 9, stats.ProjectStatusDistribution[0].Count)
}

func TestCategoriesAndStatusesAreUnpaginated(t *testing.T) {
	f := setupService(t, http.StatusOK, `[{"id":1,"name":"Databases"}]`)
	categories, err := f.service.ListCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/technologies/categories", f.last.path)
	require.Equal(t, "Databases", categories[0].Name)

	f = setupService(t, http.StatusOK, `["adopted","trial","hold"]`)
	statuses, err := f.service.ListStatuses(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/technologies/statuses", f.last.path)
	require.Equal(t, []string{"adopted", "trial", "hold"}, statuses)
}

func TestProjectTechnologyAssociationPaths(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"technology_id":4,"usage_type":"primary"}`)

	pt, err := f.service.AddProjectTechnology(context.Background(), 11, radar.AddProjectTechnologyRequest{
		TechnologyID: 4,
		UsageType:    "primary",
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), pt.TechnologyID)
	require.Equal(t, http.MethodPost, f.last.method)
	require.Equal(t, "/projects/11/technologies", f.last.path)

	f = setupService(t, http.StatusNoContent, "")
	require.NoError(t, f.service.RemoveProjectTechnology(context.Background(), 11, 4))
	require.Equal(t, http.MethodDelete, f.last.method)
	require.Equal(t, "/projects/11/technologies/4", f.last.path)
}

func TestArchivePreviewIsAGet(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"count":2,"inactive_days":365,"projects":[{"project_id":5,"project_name":"legacy-portal","days_inactive":400}]}`)

	preview, err := f.service.PreviewArchive(context.Background(), 365)
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, f.last.method, "preview must not mutate")
	require.Equal(t, "/admin/archive/preview", f.last.path)
	require.Equal(t, "inactive_days=365", f.last.rawQuery)
	require.Equal(t, 2, preview.Count)
	require.Equal(t, "legacy-portal", preview.Projects[0].ProjectName)
}

func TestArchiveExecuteIsAPost(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"success":true,"count":2,"archived_projects":[]}`)

	result, err := f.service.ExecuteArchive(context.Background(), 180)
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, f.last.method)
	require.Equal(t, "/admin/archive/execute", f.last.path)
	require.Equal(t, "inactive_days=180", f.last.rawQuery)
	require.True(t, result.Success)
}

func TestArchiveHistoryUnwrapsEnvelope(t *testing.T) {
	f := setupService(t, http.StatusOK, `{"history":[{"id":2,"archived_by_name":"Site Admin","projects_count":3,"inactive_threshold":365}]}`)

	entries, err := f.service.ArchiveHistory(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, "/admin/archive/history", f.last.path)
	require.Equal(t, "limit=10", f.last.rawQuery)
	require.Len(t, entries, 1)
	require.Equal(t, "Site Admin", entries[0].ArchivedByName)
}

func TestErrorBodySurfacesThroughService(t *testing.T) {
	f := setupService(t, http.StatusConflict, `{"message":"name already exists"}`)

	_, err := f.service.CreateTeam(context.Background(), radar.CreateTeamRequest{Name: "Platform"})
	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "name already exists", apiErr.Message)
}
