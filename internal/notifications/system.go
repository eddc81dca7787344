package notifications

import (
	"context"

	"github.com/google/uuid"
)

// System manages user notifications. Mutations are owner-scoped: a
// notification belonging to another user is reported as not found.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*Notification, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
