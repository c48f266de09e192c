package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackradar/console/archive"
	"github.com/stackradar/console/internal/config"
	"github.com/stackradar/console/internal/utils"
	"github.com/stackradar/console/listing"
	"github.com/stackradar/console/radar"
	"github.com/stackradar/console/session"
)

type console struct {
	config  config.Config
	log     zerolog.Logger
	store   *session.Store
	service *radar.Service
}

func newHTTPClient(timeoutSeconds int) *http.Client {
	return &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second}
}

func (a *console) usage() {
	fmt.Println(`Commands:
  login -email <email> -password <password>
  logout
  whoami
  dashboard
  users|technologies|projects|teams list [flags]
  users|technologies|projects|teams create [flags]
  users|technologies|projects|teams delete -id <id>
  archive preview -days <n>
  archive execute -days <n>
  archive history [-limit <n>]`)
}

func (a *console) dispatch(args []string) error {
	ctx := context.Background()

	switch args[0] {
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		return a.store.SetCurrent(nil, "")
	case "whoami":
		return a.whoami()
	case "dashboard":
		return a.dashboard(ctx)
	case "users":
		return a.users(ctx, args[1:])
	case "technologies":
		return a.technologies(ctx, args[1:])
	case "projects":
		return a.projects(ctx, args[1:])
	case "teams":
		return a.teams(ctx, args[1:])
	case "archive":
		return a.archive(ctx, args[1:])
	}
	a.usage()
	return fmt.Errorf("unknown command %q", args[0])
}

func (a *console) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.service.Login(ctx, *email, *password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	err = a.store.SetCurrent(&session.Session{
		UserID:   resp.User.ID,
		Email:    resp.User.Email,
		FullName: resp.User.FullName,
		IsAdmin:  resp.User.IsAdmin,
		IsActive: resp.User.IsActive,
	}, resp.Token)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", resp.User.Email)
	return nil
}

func (a *console) whoami() error {
	current := a.store.Current()
	if current == nil {
		fmt.Println("Not logged in")
		return nil
	}
	role := "staff"
	if current.IsAdmin {
		role = "admin"
	}
	fmt.Printf("%s <%s> (%s)\n", current.FullName, current.Email, role)
	return nil
}

func (a *console) dashboard(ctx context.Context) error {
	stats, err := a.service.DashboardStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Projects: %d  Technologies: %d  Teams: %d  Users: %d\n",
		stats.Overview.TotalProjects,
		stats.Overview.TotalTechnologies,
		stats.Overview.TotalTeams,
		stats.Overview.TotalUsers)
	for _, d := range stats.ProjectStatusDistribution {
		fmt.Printf("  %-12s %d\n", colorStatus(d.Status), d.Count)
	}
	return nil
}

// listFlags are the query flags shared by every listing command.
type listFlags struct {
	fs       *flag.FlagSet
	page     *int
	pageSize *int
	sortBy   *string
	order    *string
	search   *string
}

func newListFlags(name, defaultSort string) *listFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &listFlags{
		fs:       fs,
		page:     fs.Int("page", 1, "page number"),
		pageSize: fs.Int("size", listing.PageSizes[0], "page size (10, 20 or 50)"),
		sortBy:   fs.String("sort", defaultSort, "sort column"),
		order:    fs.String("order", listing.SortDesc, "sort order (asc or desc)"),
		search:   fs.String("q", "", "free text filter"),
	}
}

func (lf *listFlags) query(filters ...listing.Filter) listing.Query {
	return listing.Query{
		Page:      *lf.page,
		PageSize:  *lf.pageSize,
		SortBy:    *lf.sortBy,
		SortOrder: *lf.order,
		Search:    *lf.search,
		Filters:   filters,
	}
}

// runListing drives one load through a listing controller and renders the
// result, keeping the CLI on the same state machine the UI uses.
func runListing[T any](ctx context.Context, loader listing.Loader[T], q listing.Query, render func(w *tabwriter.Writer, items []T)) error {
	ctrl, err := listing.NewController(loader, listing.WithInitialQuery[T](q))
	if err != nil {
		return err
	}
	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	result := ctrl.Result()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	render(w, result.Items)
	w.Flush()
	fmt.Printf("page %d/%d (%d total)\n", result.Page, ctrl.TotalPages(), result.Total)
	return nil
}

func (a *console) listUsers(ctx context.Context, args []string) error {
	lf := newListFlags("users", "created_at")
	role := lf.fs.String("role", "", "filter by role")
	if err := parseListArgs(lf.fs, args); err != nil {
		return err
	}

	loader := func(ctx context.Context, q listing.Query) (*radar.Page[radar.User], error) {
		return a.service.ListUsers(ctx, radar.ListUsersOptions{
			ListOptions: listOptions(q),
			Role:        q.Filter("role"),
		})
	}
	return runListing(ctx, loader, lf.query(listing.Filter{Key: "role", Value: *role}),
		func(w *tabwriter.Writer, items []radar.User) {
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tADMIN\tACTIVE")
			for _, u := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%t\n", u.ID, u.Email, u.FullName, u.IsAdmin, u.IsActive)
			}
		})
}

func (a *console) listTechnologies(ctx context.Context, args []string) error {
	lf := newListFlags("technologies", "created_at")
	status := lf.fs.String("status", "", "filter by status")
	category := lf.fs.String("category", "", "filter by category id")
	if err := parseListArgs(lf.fs, args); err != nil {
		return err
	}

	loader := func(ctx context.Context, q listing.Query) (*radar.Page[radar.Technology], error) {
		return a.service.ListTechnologies(ctx, radar.ListTechnologiesOptions{
			ListOptions: listOptions(q),
			Status:      q.Filter("status"),
			CategoryID:  parseID(q.Filter("category_id")),
		})
	}
	filters := []listing.Filter{
		{Key: "status", Value: *status},
		{Key: "category_id", Value: *category},
	}
	return runListing(ctx, loader, lf.query(filters...),
		func(w *tabwriter.Writer, items []radar.Technology) {
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTATUS")
			for _, t := range items {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", t.ID, t.Name, t.CategoryID, colorStatus(t.Status))
			}
		})
}

func (a *console) listProjects(ctx context.Context, args []string) error {
	lf := newListFlags("projects", "created_at")
	status := lf.fs.String("status", "", "filter by status")
	team := lf.fs.String("team", "", "filter by team id")
	if err := parseListArgs(lf.fs, args); err != nil {
		return err
	}

	loader := func(ctx context.Context, q listing.Query) (*radar.Page[radar.Project], error) {
		return a.service.ListProjects(ctx, radar.ListProjectsOptions{
			ListOptions: listOptions(q),
			Status:      q.Filter("status"),
			TeamID:      parseID(q.Filter("team_id")),
		})
	}
	filters := []listing.Filter{
		{Key: "status", Value: *status},
		{Key: "team_id", Value: *team},
	}
	return runListing(ctx, loader, lf.query(filters...),
		func(w *tabwriter.Writer, items []radar.Project) {
			fmt.Fprintln(w, "ID\tNAME\tTEAM\tSTATUS")
			for _, p := range items {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", p.ID, p.Name, utils.Value(p.TeamID), colorStatus(p.Status))
			}
		})
}

func (a *console) listTeams(ctx context.Context, args []string) error {
	lf := newListFlags("teams", "created_at")
	if err := parseListArgs(lf.fs, args); err != nil {
		return err
	}

	loader := func(ctx context.Context, q listing.Query) (*radar.Page[radar.Team], error) {
		return a.service.ListTeams(ctx, radar.ListTeamsOptions{ListOptions: listOptions(q)})
	}
	return runListing(ctx, loader, lf.query(),
		func(w *tabwriter.Writer, items []radar.Team) {
			fmt.Fprintln(w, "ID\tNAME\tLEAD")
			for _, t := range items {
				fmt.Fprintf(w, "%d\t%s\t%d\n", t.ID, t.Name, utils.Value(t.LeadID))
			}
		})
}

func (a *console) archive(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("archive needs a subcommand: preview, execute or history")
	}

	manager, err := archive.NewManager(a.service, a.store, archive.WithLogger(a.log))
	if err != nil {
		return err
	}

	switch args[0] {
	case "preview":
		days, err := parseDaysFlag(args[1:])
		if err != nil {
			return err
		}
		preview, err := manager.Preview(ctx, days)
		if err != nil {
			return err
		}
		printArchiveRows(preview.Projects)
		fmt.Printf("%d project(s) inactive for more than %d days\n", preview.Count, days)
		return nil

	case "execute":
		days, err := parseDaysFlag(args[1:])
		if err != nil {
			return err
		}
		preview, err := manager.Preview(ctx, days)
		if err != nil {
			return err
		}
		printArchiveRows(preview.Projects)
		if !manager.CanExecute() {
			fmt.Println("Nothing to archive")
			return nil
		}
		if !confirm(fmt.Sprintf("Archive %d project(s)?", preview.Count)) {
			manager.Reset()
			fmt.Println("Aborted")
			return nil
		}
		result, err := manager.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Archived %d project(s)\n", result.Count)
		return nil

	case "history":
		fs := flag.NewFlagSet("history", flag.ContinueOnError)
		limit := fs.Int("limit", 10, "number of entries")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		history, err := manager.History(ctx, *limit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tBY\tPROJECTS\tTHRESHOLD")
		for _, h := range history {
			fmt.Fprintf(w, "%s\t%s\t%d\t%dd\n", h.ArchivedAt, h.ArchivedByName, h.ProjectsCount, h.InactiveThreshold)
		}
		w.Flush()
		return nil
	}
	return fmt.Errorf("unknown archive subcommand %q", args[0])
}

func listOptions(q listing.Query) radar.ListOptions {
	return radar.ListOptions{
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Search:    q.Search,
	}
}

func parseListArgs(fs *flag.FlagSet, args []string) error {
	if len(args) > 0 && args[0] == "list" {
		args = args[1:]
	}
	return fs.Parse(args)
}

func parseID(s string) int64 {
	var id int64
	fmt.Sscanf(s, "%d", &id)
	return id
}

func parseDaysFlag(args []string) (int, error) {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	days := fs.Int("days", 0, "inactivity threshold in days")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	return *days, nil
}

func printArchiveRows(projects []radar.ArchivedProject) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLAST UPDATED\tDAYS INACTIVE")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.ProjectID, p.ProjectName, p.LastUpdated, p.DaysInactive)
	}
	w.Flush()
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
