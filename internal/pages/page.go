// Package pages tracks the per-page screening state of uploaded
// documents. Every rasterized page gets its own record that moves
// independently to a terminal state, so one failed page never hides
// the results of its siblings.
package pages

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status is the page screening state.
type Status string

// Page screening states.
const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Page is the screening record for one rasterized document page.
type Page struct {
	ID               uuid.UUID       `json:"id"`
	DocumentID       uuid.UUID       `json:"document_id"`
	OwnerID          uuid.UUID       `json:"owner_id"`
	SequenceNumber   int             `json:"sequence_number"`
	StorageKey       string          `json:"storage_key"`
	Status           Status          `json:"status"`
	ExtractionResult json.RawMessage `json:"extraction_result,omitempty"`
	ZonesResult      json.RawMessage `json:"zones_result,omitempty"`
	ReportKey        *string         `json:"report_key,omitempty"`
	Error            *string         `json:"error,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Terminal reports whether the page reached a terminal state.
func (p *Page) Terminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusFailed
}

// CreateCommand contains the data required to register a page in
// processing state.
type CreateCommand struct {
	DocumentID     uuid.UUID
	OwnerID        uuid.UUID
	SequenceNumber int
	StorageKey     string
}

// Aggregate derives the document-level status from its pages: every
// page failed means failed, every page completed means completed,
// anything else (including no pages yet) means processing.
func Aggregate(pages []*Page) Status {
	if len(pages) == 0 {
		return StatusProcessing
	}

	completed, failed := 0, 0
	for _, p := range pages {
		switch p.Status {
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		}
	}

	switch {
	case failed == len(pages):
		return StatusFailed
	case completed == len(pages):
		return StatusCompleted
	default:
		return StatusProcessing
	}
}
