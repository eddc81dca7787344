package pages

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// System manages page screening records. Owner-scoped reads report
// records belonging to another user as not found.
type System interface {
	// Create registers a page in processing state.
	Create(ctx context.Context, cmd CreateCommand) (*Page, error)

	// Complete transitions a page to completed with both analysis
	// results and the generated report key.
	Complete(ctx context.Context, id uuid.UUID, extraction, zones json.RawMessage, reportKey string) error

	// Fail transitions a page to failed with a diagnostic message.
	Fail(ctx context.Context, id uuid.UUID, message string) error

	// Find returns the page with the given id, owner-scoped.
	Find(ctx context.Context, ownerID, id uuid.UUID) (*Page, error)

	// ListByDocument returns a document's pages ordered by sequence number.
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*Page, error)

	// ListByOwner returns all of a user's pages, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Page, error)
}
