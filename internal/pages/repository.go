package pages

import (
	"context"
	"database/sql"
	"encoding/json"
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

// New creates a sql-backed page system.
func New(db database.System, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "pages"),
	}
}

const createQuery = `
INSERT INTO pages (id, document_id, owner_id, sequence_number, storage_key, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, document_id, owner_id, sequence_number, storage_key, status,
	extraction_result, zones_result, report_key, error, created_at, updated_at`

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Page, error) {
	page, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (*Page, error) {
		return repository.QueryOne(ctx, tx, createQuery, []any{
			uuid.New(), cmd.DocumentID, cmd.OwnerID, cmd.SequenceNumber, cmd.StorageKey, StatusProcessing,
		}, scanPage)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Debug("page created",
		"id", page.ID,
		"document_id", page.DocumentID,
		"sequence_number", page.SequenceNumber,
	)
	return page, nil
}

func (r *repo) Complete(ctx context.Context, id uuid.UUID, extraction, zones json.RawMessage, reportKey string) error {
	_, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, `
			UPDATE pages
			SET status = $1, extraction_result = $2, zones_result = $3, report_key = $4,
				error = NULL, updated_at = now()
			WHERE id = $5`,
			StatusCompleted, []byte(extraction), []byte(zones), reportKey, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Debug("page completed", "id", id)
	return nil
}

func (r *repo) Fail(ctx context.Context, id uuid.UUID, message string) error {
	_, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			"UPDATE pages SET status = $1, error = $2, updated_at = now() WHERE id = $3",
			StatusFailed, message, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Debug("page failed", "id", id, "error", message)
	return nil
}

func (r *repo) Find(ctx context.Context, ownerID, id uuid.UUID) (*Page, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("OwnerId", ownerID).
		BuildSingle("Id", id)

	page, err := repository.QueryOne(ctx, r.db.Connection(), q, args, scanPage)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return page, nil
}

func (r *repo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*Page, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentId", documentID).
		BuildList()

	result, err := repository.QueryMany(ctx, r.db.Connection(), q, args, scanPage)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	return result, nil
}

func (r *repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Page, error) {
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "CreatedAt", Descending: true}).
		WhereEquals("OwnerId", ownerID).
		BuildList()

	result, err := repository.QueryMany(ctx, r.db.Connection(), q, args, scanPage)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	return result, nil
}
