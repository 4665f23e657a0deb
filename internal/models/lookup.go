package models

import "time"

// LookupKind names one of the small reference tables managed under settings.
type LookupKind string

const (
	LookupDepartments      LookupKind = "departments"
	LookupEmploymentTypes  LookupKind = "employment-types"
	LookupEducationLevels  LookupKind = "education-levels"
	LookupExperienceLevels LookupKind = "experience-levels"
)

var lookupTables = map[LookupKind]string{
	LookupDepartments:      "departments",
	LookupEmploymentTypes:  "employment_types",
	LookupEducationLevels:  "education_levels",
	LookupExperienceLevels: "experience_levels",
}

// ParseLookupKind maps a route segment to a known kind.
func ParseLookupKind(s string) (LookupKind, bool) {
	k := LookupKind(s)
	_, ok := lookupTables[k]
	return k, ok
}

// Table returns the SQL table backing the kind. Only known kinds have a
// table, so the result is safe to interpolate into a query.
func (k LookupKind) Table() string {
	return lookupTables[k]
}

// LookupItem is a row of a reference table.
type LookupItem struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardStats summarises the pipeline for the HR dashboard.
type DashboardStats struct {
	OpenJobs          int                       `json:"open_jobs"`
	TotalApplications int                       `json:"total_applications"`
	ByStatus          map[ApplicationStatus]int `json:"by_status"`
}
