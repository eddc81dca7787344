// Package documents manages uploaded survey plan PDFs. Uploads are
// acknowledged immediately and handed to the processing pipeline;
// document status tracks the coarse lifecycle while per-page state
// lives in the pages package.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Status is the coarse document lifecycle state.
type Status string

// Document lifecycle states.
const (
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Document represents an uploaded survey plan PDF.
type Document struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count,omitempty"`
	StorageKey  string    `json:"storage_key"`
	Status      Status    `json:"status"`
	Error       *string   `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to register an upload.
// Data holds the raw PDF bytes to be stored.
type CreateCommand struct {
	OwnerID     uuid.UUID
	Filename    string
	ContentType string
	SizeBytes   int64
	PageCount   *int
	Data        []byte
}
