package dto

import "recruit-api/internal/models"

// LookupRequest creates or replaces a reference table row.
type LookupRequest struct {
	Kind        models.LookupKind `json:"-"`
	ID          int               `json:"-"`
	Name        string            `json:"name" validate:"required,notblank,max=100"`
	Description *string           `json:"description" validate:"omitempty,max=500"`
}

// StatsRequest optionally scopes dashboard counts to one job.
type StatsRequest struct {
	JobID string `form:"job_id" validate:"omitempty,uuid"`
}
