package models

import "time"

// JobStatus enumerates the lifecycle states of a job card.
type JobStatus string

const (
	JobStatusPending    JobStatus = "Pending"
	JobStatusInProgress JobStatus = "In Progress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusCancelled  JobStatus = "Cancelled"
)

// FirstJobNumber is the number assigned to the first job ever created.
// Numbers increment by one per created job and are never reused.
const FirstJobNumber = 1001

// Valid reports whether the status is one of the four known values.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the status counts against technician capacity.
func (s JobStatus) IsActive() bool {
	return s == JobStatusPending || s == JobStatusInProgress
}

// ActiveStatuses lists the statuses counted against technician capacity.
func ActiveStatuses() []string {
	return []string{string(JobStatusPending), string(JobStatusInProgress)}
}

// Job represents a customer job card.
type Job struct {
	ID             string    `db:"id" json:"id"`
	JobNumber      int       `db:"job_number" json:"job_number"`
	CustomerName   string    `db:"customer_name" json:"customer_name"`
	CustomerEmail  string    `db:"customer_email" json:"customer_email"`
	NIC            string    `db:"nic" json:"nic"`
	Mobile         string    `db:"mobile" json:"mobile"`
	TechnicianID   string    `db:"technician_id" json:"technician_id"`
	TechnicianName string    `db:"technician_name" json:"technician_name"`
	Status         JobStatus `db:"status" json:"status"`
	Description    *string   `db:"description" json:"description,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
