package models

import "time"

// DefaultMaxJobs is the capacity ceiling applied when a technician has no
// explicit limit configured.
const DefaultMaxJobs = 5

// Technician represents a repair technician eligible for job assignment.
type Technician struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Email             *string   `db:"email" json:"email,omitempty"`
	Mobile            *string   `db:"mobile" json:"mobile,omitempty"`
	Specialization    *string   `db:"specialization" json:"specialization,omitempty"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	MaxJobs           int       `db:"max_jobs" json:"max_jobs"`
	CurrentActiveJobs int       `db:"current_active_jobs" json:"current_active_jobs"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// AvailableTechnician pairs a technician with the active-job count computed
// from the jobs table. The count is the authoritative availability view; the
// denormalized counter on the technician row only backs admission checks.
type AvailableTechnician struct {
	Technician
	ActiveJobs int `db:"active_jobs" json:"active_jobs"`
}
