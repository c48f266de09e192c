package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/stackradar/console/forms"
	"github.com/stackradar/console/internal/utils"
	"github.com/stackradar/console/radar"
)

// Entity command routers. "list" is the default subcommand so the bare
// entity name keeps working.

func (a *console) users(ctx context.Context, args []string) error {
	switch sub(args) {
	case "create":
		return a.createUser(ctx, args[1:])
	case "delete":
		return a.deleteEntity(ctx, args[1:], a.service.DeleteUser)
	}
	return a.listUsers(ctx, args)
}

func (a *console) technologies(ctx context.Context, args []string) error {
	switch sub(args) {
	case "create":
		return a.createTechnology(ctx, args[1:])
	case "delete":
		return a.deleteEntity(ctx, args[1:], a.service.DeleteTechnology)
	}
	return a.listTechnologies(ctx, args)
}

func (a *console) projects(ctx context.Context, args []string) error {
	switch sub(args) {
	case "create":
		return a.createProject(ctx, args[1:])
	case "delete":
		return a.deleteEntity(ctx, args[1:], a.service.DeleteProject)
	}
	return a.listProjects(ctx, args)
}

func (a *console) teams(ctx context.Context, args []string) error {
	switch sub(args) {
	case "create":
		return a.createTeam(ctx, args[1:])
	case "delete":
		return a.deleteEntity(ctx, args[1:], a.service.DeleteTeam)
	}
	return a.listTeams(ctx, args)
}

func sub(args []string) string {
	if len(args) == 0 {
		return "list"
	}
	return args[0]
}

// submitDraft pushes one draft through a form controller so create
// commands get the same validate-then-submit behaviour as the dialogs.
func submitDraft[T any](ctx context.Context, defaults, draft T, submit forms.Submitter[T]) error {
	form, err := forms.NewForm(defaults, submit)
	if err != nil {
		return err
	}
	form.Open()
	form.SetDraft(draft)

	if err := form.Submit(ctx); err != nil {
		var vErr *forms.ValidationError
		if errors.As(err, &vErr) {
			fields := make([]string, 0, len(vErr.Fields))
			for field := range vErr.Fields {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				fmt.Printf("  %s: %s\n", field, vErr.Fields[field])
			}
		}
		return err
	}
	return nil
}

func (a *console) createTechnology(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("technologies create", flag.ContinueOnError)
	name := fs.String("name", "", "technology name")
	category := fs.Int64("category", 0, "category id")
	status := fs.String("status", "", "lifecycle status")
	description := fs.String("description", "", "description")
	website := fs.String("website", "", "official website")
	if err := fs.Parse(args); err != nil {
		return err
	}

	draft := radar.CreateTechnologyRequest{
		Name:            *name,
		CategoryID:      *category,
		Status:          *status,
		Description:     *description,
		OfficialWebsite: *website,
	}
	return submitDraft(ctx, radar.CreateTechnologyRequest{}, draft,
		func(ctx context.Context, req radar.CreateTechnologyRequest) error {
			tech, err := a.service.CreateTechnology(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Created technology %d (%s)\n", tech.ID, tech.Name)
			return nil
		})
}

func (a *console) createProject(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("projects create", flag.ContinueOnError)
	name := fs.String("name", "", "project name")
	status := fs.String("status", "", "project status")
	description := fs.String("description", "", "description")
	repoURL := fs.String("repo", "", "repository URL")
	team := fs.Int64("team", 0, "owning team id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	draft := radar.CreateProjectRequest{
		Name:          *name,
		Status:        *status,
		Description:   *description,
		RepositoryURL: *repoURL,
	}
	if *team > 0 {
		draft.TeamID = utils.Ptr(*team)
	}
	return submitDraft(ctx, radar.CreateProjectRequest{}, draft,
		func(ctx context.Context, req radar.CreateProjectRequest) error {
			project, err := a.service.CreateProject(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %d (%s)\n", project.ID, project.Name)
			return nil
		})
}

func (a *console) createTeam(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("teams create", flag.ContinueOnError)
	name := fs.String("name", "", "team name")
	description := fs.String("description", "", "description")
	lead := fs.Int64("lead", 0, "lead user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	draft := radar.CreateTeamRequest{Name: *name, Description: *description}
	if *lead > 0 {
		draft.LeadID = utils.Ptr(*lead)
	}
	return submitDraft(ctx, radar.CreateTeamRequest{}, draft,
		func(ctx context.Context, req radar.CreateTeamRequest) error {
			team, err := a.service.CreateTeam(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Created team %d (%s)\n", team.ID, team.Name)
			return nil
		})
}

func (a *console) createUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users create", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fullName := fs.String("name", "", "full name")
	admin := fs.Bool("admin", false, "grant admin rights")
	if err := fs.Parse(args); err != nil {
		return err
	}

	draft := radar.CreateUserRequest{
		Email:    *email,
		Password: *password,
		FullName: *fullName,
		IsAdmin:  *admin,
		IsActive: true,
	}
	return submitDraft(ctx, radar.CreateUserRequest{}, draft,
		func(ctx context.Context, req radar.CreateUserRequest) error {
			user, err := a.service.CreateUser(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Created user %d <%s>\n", user.ID, user.Email)
			return nil
		})
}

func (a *console) deleteEntity(ctx context.Context, args []string, remove func(context.Context, int64) error) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("delete needs -id")
	}
	if err := remove(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted %d\n", *id)
	return nil
}
