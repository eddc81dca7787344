package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/pkg/pagination"
)

// System defines document management operations. Read operations are
// owner-scoped: a document belonging to another user is reported as
// not found.
type System interface {
	List(ctx context.Context, ownerID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[*Document], error)
	Find(ctx context.Context, ownerID, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// SetStatus transitions the document lifecycle state.
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error

	// SetPageCount records the page count discovered during processing.
	SetPageCount(ctx context.Context, id uuid.UUID, count int) error

	// Fail marks the document failed with a diagnostic message.
	Fail(ctx context.Context, id uuid.UUID, message string) error
}
