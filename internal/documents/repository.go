package documents

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/storage"
	"github.com/efoncier/survey-lab/pkg/database"
	"github.com/efoncier/survey-lab/pkg/pagination"
	"github.com/efoncier/survey-lab/pkg/query"
	"github.com/efoncier/survey-lab/pkg/repository"
)

type repo struct {
	db         database.System
	storage    storage.Store
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository with database and file storage integration.
func New(db database.System, store storage.Store, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, ownerID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[*Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("OwnerId", ownerID).
		WhereContains("Filename", page.Search).
		OrderByFields(page.Sort)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.Connection().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db.Connection(), pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, ownerID, id uuid.UUID) (*Document, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("OwnerId", ownerID).
		BuildSingle("Id", id)

	doc, err := repository.QueryOne(ctx, r.db.Connection(), q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return doc, nil
}

const createQuery = `
INSERT INTO documents (id, owner_id, filename, content_type, size_bytes, page_count, storage_key, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, owner_id, filename, content_type, size_bytes, page_count, storage_key, status, error, created_at, updated_at`

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	id := uuid.New()
	storageKey := buildStorageKey(cmd.OwnerID, id)

	if _, err := r.storage.Write(storageKey, bytes.NewReader(cmd.Data)); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	doc, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (*Document, error) {
		return repository.QueryOne(ctx, tx, createQuery, []any{
			id, cmd.OwnerID, cmd.Filename, cmd.ContentType, cmd.SizeBytes, cmd.PageCount, storageKey, StatusUploading,
		}, scanDocument)
	})
	if err != nil {
		if delErr := r.storage.Delete(storageKey); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_key", storageKey, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created",
		"id", doc.ID,
		"owner_id", doc.OwnerID,
		"filename", doc.Filename,
		"storage_key", storageKey,
	)
	return doc, nil
}

func (r *repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	doc, err := r.Find(ctx, ownerID, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			"DELETE FROM documents WHERE id = $1 AND owner_id = $2", id, ownerID)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.storage.Delete(doc.StorageKey); err != nil {
		r.logger.Error("storage cleanup failed", "storage_key", doc.StorageKey, "error", err)
	}

	r.logger.Info("document deleted", "id", id, "owner_id", ownerID)
	return nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	_, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			"UPDATE documents SET status = $1, updated_at = now() WHERE id = $2", status, id)
	})
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func (r *repo) SetPageCount(ctx context.Context, id uuid.UUID, count int) error {
	_, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			"UPDATE documents SET page_count = $1, updated_at = now() WHERE id = $2", count, id)
	})
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func (r *repo) Fail(ctx context.Context, id uuid.UUID, message string) error {
	_, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			"UPDATE documents SET status = $1, error = $2, updated_at = now() WHERE id = $3",
			StatusFailed, message, id)
	})
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func buildStorageKey(ownerID, id uuid.UUID) string {
	return fmt.Sprintf("pdfs/%s/%s.pdf", ownerID, id)
}
