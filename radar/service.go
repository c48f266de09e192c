package radar

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stackradar/console/transport"
)

// Service exposes typed bindings for every backend endpoint. All calls are
// authenticated except Login.
type Service struct {
	client *transport.Client
}

// NewService wraps a transport client.
func NewService(client *transport.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] transport client is required")
	}
	return &Service{client: client}, nil
}

// ListOptions are the query parameters shared by every listing endpoint.
// Zero values are omitted from the request.
type ListOptions struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Search    string
}

func (o ListOptions) query() transport.Query {
	q := transport.Query{}
	if o.Page > 0 {
		q = q.Set("page", o.Page)
	}
	if o.PageSize > 0 {
		q = q.Set("page_size", o.PageSize)
	}
	q = q.Set("sort_by", o.SortBy)
	q = q.Set("sort_order", o.SortOrder)
	q = q.Set("q", o.Search)
	return q
}

type ListUsersOptions struct {
	ListOptions
	Role string
}

type ListTechnologiesOptions struct {
	ListOptions
	Status     string
	CategoryID int64
}

type ListProjectsOptions struct {
	ListOptions
	Status string
	TeamID int64
}

type ListTeamsOptions struct {
	ListOptions
}

// Login authenticates and returns the bearer token with the user record.
// The only unauthenticated call.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := s.client.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   LoginRequest{Email: email, Password: password},
		NoAuth: true,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("[Service.Login]: %w", err)
	}
	return &resp, nil
}

// Users

func (s *Service) ListUsers(ctx context.Context, opts ListUsersOptions) (*Page[User], error) {
	q := opts.query().Set("role", opts.Role)
	var page Page[User]
	if err := s.client.Do(ctx, transport.Request{Path: "/users", Query: q}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/users", Body: req}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	var user User
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPut, Path: fmt.Sprintf("/users/%d", id), Body: req}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.client.Do(ctx, transport.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/users/%d", id)}, nil)
}

// Dashboard

func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.client.Do(ctx, transport.Request{Path: "/dashboard/stats"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Technology categories and statuses

func (s *Service) ListCategories(ctx context.Context) ([]TechnologyCategory, error) {
	var categories []TechnologyCategory
	if err := s.client.Do(ctx, transport.Request{Path: "/technologies/categories"}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*TechnologyCategory, error) {
	var category TechnologyCategory
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/technologies/categories", Body: req}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Service) ListStatuses(ctx context.Context) ([]string, error) {
	var statuses []string
	if err := s.client.Do(ctx, transport.Request{Path: "/technologies/statuses"}, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (s *Service) CreateStatus(ctx context.Context, name string) error {
	body := map[string]string{"name": name}
	return s.client.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/technologies/statuses", Body: body}, nil)
}

// Technologies

func (s *Service) ListTechnologies(ctx context.Context, opts ListTechnologiesOptions) (*Page[Technology], error) {
	q := opts.query().Set("status", opts.Status)
	if opts.CategoryID > 0 {
		q = q.Set("category_id", opts.CategoryID)
	}
	var page Page[Technology]
	if err := s.client.Do(ctx, transport.Request{Path: "/technologies", Query: q}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) CreateTechnology(ctx context.Context, req CreateTechnologyRequest) (*Technology, error) {
	var tech Technology
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/technologies", Body: req}, &tech); err != nil {
		return nil, err
	}
	return &tech, nil
}

func (s *Service) GetTechnology(ctx context.Context, id int64) (*Technology, error) {
	var tech Technology
	if err := s.client.Do(ctx, transport.Request{Path: fmt.Sprintf("/technologies/%d", id)}, &tech); err != nil {
		return nil, err
	}
	return &tech, nil
}

func (s *Service) UpdateTechnology(ctx context.Context, id int64, req UpdateTechnologyRequest) (*Technology, error) {
	var tech Technology
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPut, Path: fmt.Sprintf("/technologies/%d", id), Body: req}, &tech); err != nil {
		return nil, err
	}
	return &tech, nil
}

func (s *Service) DeleteTechnology(ctx context.Context, id int64) error {
	return s.client.Do(ctx, transport.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/technologies/%d", id)}, nil)
}

// TechnologyUsageStats returns the free-form usage statistics blob.
func (s *Service) TechnologyUsageStats(ctx context.Context) (map[string]any, error) {
	var stats map[string]any
	if err := s.client.Do(ctx, transport.Request{Path: "/technologies/stats"}, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Projects

func (s *Service) ListProjects(ctx context.Context, opts ListProjectsOptions) (*Page[Project], error) {
	q := opts.query().Set("status", opts.Status)
	if opts.TeamID > 0 {
		q = q.Set("team_id", opts.TeamID)
	}
	var page Page[Project]
	if err := s.client.Do(ctx, transport.Request{Path: "/projects", Query: q}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var project Project
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/projects", Body: req}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Service) GetProject(ctx context.Context, id int64) (*Project, error) {
	var project Project
	if err := s.client.Do(ctx, transport.Request{Path: fmt.Sprintf("/projects/%d", id)}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Service) UpdateProject(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	var project Project
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPut, Path: fmt.Sprintf("/projects/%d", id), Body: req}, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	return s.client.Do(ctx, transport.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/projects/%d", id)}, nil)
}

// Project-technology associations

func (s *Service) ListProjectTechnologies(ctx context.Context, projectID int64) ([]ProjectTechnology, error) {
	var techs []ProjectTechnology
	if err := s.client.Do(ctx, transport.Request{Path: fmt.Sprintf("/projects/%d/technologies", projectID)}, &techs); err != nil {
		return nil, err
	}
	return techs, nil
}

func (s *Service) AddProjectTechnology(ctx context.Context, projectID int64, req AddProjectTechnologyRequest) (*ProjectTechnology, error) {
	var pt ProjectTechnology
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPost, Path: fmt.Sprintf("/projects/%d/technologies", projectID), Body: req}, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

func (s *Service) RemoveProjectTechnology(ctx context.Context, projectID, technologyID int64) error {
	return s.client.Do(ctx, transport.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/projects/%d/technologies/%d", projectID, technologyID)}, nil)
}

// Teams

func (s *Service) ListTeams(ctx context.Context, opts ListTeamsOptions) (*Page[Team], error) {
	var page Page[Team]
	if err := s.client.Do(ctx, transport.Request{Path: "/teams", Query: opts.query()}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) CreateTeam(ctx context.Context, req CreateTeamRequest) (*Team, error) {
	var team Team
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/teams", Body: req}, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Service) GetTeam(ctx context.Context, id int64) (*Team, error) {
	var team Team
	if err := s.client.Do(ctx, transport.Request{Path: fmt.Sprintf("/teams/%d", id)}, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Service) UpdateTeam(ctx context.Context, id int64, req UpdateTeamRequest) (*Team, error) {
	var team Team
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPut, Path: fmt.Sprintf("/teams/%d", id), Body: req}, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Service) DeleteTeam(ctx context.Context, id int64) error {
	return s.client.Do(ctx, transport.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/teams/%d", id)}, nil)
}

// Archive (admin only)

func (s *Service) PreviewArchive(ctx context.Context, inactiveDays int) (*ArchivePreview, error) {
	q := transport.Query{}.Set("inactive_days", inactiveDays)
	var preview ArchivePreview
	if err := s.client.Do(ctx, transport.Request{Path: "/admin/archive/preview", Query: q}, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

func (s *Service) ExecuteArchive(ctx context.Context, inactiveDays int) (*ArchiveResult, error) {
	q := transport.Query{}.Set("inactive_days", inactiveDays)
	var result ArchiveResult
	if err := s.client.Do(ctx, transport.Request{Method: http.MethodPost, Path: "/admin/archive/execute", Query: q}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) ArchiveHistory(ctx context.Context, limit int) ([]ArchiveHistoryEntry, error) {
	q := transport.Query{}.Set("limit", limit)
	var resp struct {
		History []ArchiveHistoryEntry `json:"history"`
	}
	if err := s.client.Do(ctx, transport.Request{Path: "/admin/archive/history", Query: q}, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}
