package models

import "time"

// NotificationType distinguishes customer-driven events surfaced to admins.
type NotificationType string

const (
	NotificationTypeUpdate NotificationType = "Update"
	NotificationTypeDelete NotificationType = "Delete"
)

// Notification represents an admin-facing record of a customer action.
type Notification struct {
	ID           string           `db:"id" json:"id"`
	Type         NotificationType `db:"type" json:"type"`
	Message      string           `db:"message" json:"message"`
	CustomerName string           `db:"customer_name" json:"customer_name"`
	JobNumber    int              `db:"job_number" json:"job_number"`
	IsRead       bool             `db:"is_read" json:"is_read"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}
