package domain

import "time"

// AuditLog represents an audit event for a mutating operation.
type AuditLog struct {
	ID         string
	Action     string
	Resource   string
	ResourceID string
	IP         string
	Metadata   string
	CreatedAt  time.Time
}
