package radar

// Request payloads. The validate tags are the form-level rules; the forms
// package evaluates them before anything reaches the wire.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateTechnologyRequest struct {
	Name            string `json:"name" validate:"required"`
	CategoryID      int64  `json:"category_id" validate:"required,gt=0"`
	Description     string `json:"description"`
	OfficialWebsite string `json:"official_website"`
	Status          string `json:"status" validate:"required"`
}

// UpdateTechnologyRequest shares the create shape.
type UpdateTechnologyRequest = CreateTechnologyRequest

type CreateProjectRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	TeamID        *int64  `json:"team_id"`
	Status        string  `json:"status" validate:"required"`
	RepositoryURL string  `json:"repository_url" validate:"omitempty,url"`
	StartDate     *string `json:"start_date"`
	TechnologyIDs []int64 `json:"technology_ids,omitempty"`
}

type UpdateProjectRequest = CreateProjectRequest

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	LeadID      *int64 `json:"lead_id"`
}

type UpdateTeamRequest = CreateTeamRequest

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

// UpdateUserRequest is the create shape minus the password field.
type UpdateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type AddProjectTechnologyRequest struct {
	TechnologyID int64  `json:"technology_id" validate:"required,gt=0"`
	VersionID    *int64 `json:"version_id"`
	UsageType    string `json:"usage_type"`
	Notes        string `json:"notes"`
}
