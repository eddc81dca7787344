package notifications

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/pkg/database"
	"github.com/efoncier/survey-lab/pkg/query"
	"github.com/efoncier/survey-lab/pkg/repository"
)

type repo struct {
	db     database.System
	logger *slog.Logger
}

// New creates a sql-backed notification system.
func New(db database.System, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "notifications"),
	}
}

const createQuery = `
INSERT INTO notifications (id, user_id, title, message, severity, result_id, report_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, title, message, severity, read, result_id, report_url, created_at`

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Notification, error) {
	notification, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (*Notification, error) {
		return repository.QueryOne(ctx, tx, createQuery, []any{
			uuid.New(), cmd.UserID, cmd.Title, cmd.Message, cmd.Severity, cmd.ResultID, cmd.ReportURL,
		}, scanNotification)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Debug("notification created",
		"id", notification.ID,
		"user_id", notification.UserID,
		"severity", notification.Severity,
	)
	return notification, nil
}

func (r *repo) List(ctx context.Context, userID uuid.UUID) ([]*Notification, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserId", userID).
		BuildList()

	result, err := repository.QueryMany(ctx, r.db.Connection(), q, args, scanNotification)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	return result, nil
}

func (r *repo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			"UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	})
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func (r *repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			"DELETE FROM notifications WHERE id = $1 AND user_id = $2", id, userID)
	})
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
