// Package notifications records user-facing processing outcomes.
// Notifications are created only by the pipeline notifier; the HTTP
// surface reads, marks, and deletes them.
package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification outcome.
type Severity string

// Notification severities.
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one user-facing processing outcome.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Severity  Severity   `json:"severity"`
	Read      bool       `json:"read"`
	ResultID  *uuid.UUID `json:"result_id,omitempty"`
	ReportURL *string    `json:"report_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateCommand contains the data required to record a notification.
type CreateCommand struct {
	UserID    uuid.UUID
	Title     string
	Message   string
	Severity  Severity
	ResultID  *uuid.UUID
	ReportURL *string
}
