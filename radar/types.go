// Package radar defines the wire types of the technology-radar backend and
// a typed Service binding every endpoint the console consumes.
package radar

// User is a staff account. Admins additionally see user management and the
// archive tooling.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	IsAdmin   bool   `json:"is_admin"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TechnologyCategory groups technologies (languages, databases, ...).
type TechnologyCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	CreatedAt   string `json:"created_at"`
}

type Technology struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	CategoryID      int64  `json:"category_id"`
	Description     string `json:"description"`
	OfficialWebsite string `json:"official_website"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type Project struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	TeamID        *int64              `json:"team_id"`
	Status        string              `json:"status"`
	RepositoryURL string              `json:"repository_url"`
	StartDate     *string             `json:"start_date"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
	Technologies  []ProjectTechnology `json:"technologies,omitempty"`
}

type Team struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LeadID      *int64 `json:"lead_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProjectTechnology is a technology-to-project association.
type ProjectTechnology struct {
	TechnologyID int64  `json:"technology_id"`
	Name         string `json:"name,omitempty"`
	VersionID    *int64 `json:"version_id"`
	UsageType    string `json:"usage_type"`
	Notes        string `json:"notes"`
}

// DashboardStats are the read-only aggregates behind the home page.
type DashboardStats struct {
	Overview struct {
		TotalProjects     int `json:"total_projects"`
		TotalTechnologies int `json:"total_technologies"`
		TotalTeams        int `json:"total_teams"`
		TotalUsers        int `json:"total_users"`
	} `json:"overview"`
	TechnologyUsage []struct {
		Name         string `json:"name"`
		ProjectCount int    `json:"project_count"`
		CategoryName string `json:"category_name"`
	} `json:"technology_usage"`
	ProjectStatusDistribution []struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	} `json:"project_status_distribution"`
	RecentProjects []struct {
		ID        int64   `json:"id"`
		Name      string  `json:"name"`
		Status    string  `json:"status"`
		CreatedAt string  `json:"created_at"`
		TeamName  *string `json:"team_name"`
		TechCount int     `json:"tech_count"`
	} `json:"recent_projects"`
	TeamSummary []struct {
		ID           int64   `json:"id"`
		Name         string  `json:"name"`
		ProjectCount int     `json:"project_count"`
		LeadName     *string `json:"lead_name"`
	} `json:"team_summary"`
	TechnologyByCategory []struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	} `json:"technology_by_category"`
}

// ArchivedProject is one row of an archive preview or execution result.
type ArchivedProject struct {
	ProjectID    int64  `json:"project_id"`
	ProjectName  string `json:"project_name"`
	LastUpdated  string `json:"last_updated"`
	DaysInactive int    `json:"days_inactive"`
	ActionTaken  string `json:"action_taken"`
}

// ArchivePreview is the read-only dry run of an archival.
type ArchivePreview struct {
	Count        int               `json:"count"`
	InactiveDays int               `json:"inactive_days"`
	Projects     []ArchivedProject `json:"projects"`
}

// ArchiveResult reports an executed archival.
type ArchiveResult struct {
	Success          bool              `json:"success"`
	Count            int               `json:"count"`
	ArchivedProjects []ArchivedProject `json:"archived_projects"`
}

// ArchiveHistoryEntry is one appended archival run.
type ArchiveHistoryEntry struct {
	ID                int64  `json:"id"`
	ArchivedAt        string `json:"archived_at"`
	ArchivedByName    string `json:"archived_by_name"`
	ProjectsCount     int    `json:"projects_count"`
	InactiveThreshold int    `json:"inactive_threshold"`
	Notes             string `json:"notes"`
}
