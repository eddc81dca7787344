package pages

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/internal/documents"
	"github.com/efoncier/survey-lab/internal/storage"
	"github.com/efoncier/survey-lab/pkg/handlers"
	"github.com/efoncier/survey-lab/pkg/routes"
)

// Handler provides HTTP endpoints for page status and result queries.
type Handler struct {
	pages     System
	documents documents.System
	storage   storage.Store
	logger    *slog.Logger
}

// NewHandler creates a page handler.
func NewHandler(pages System, docs documents.System, store storage.Store, logger *slog.Logger) *Handler {
	return &Handler{
		pages:     pages,
		documents: docs,
		storage:   store,
		logger:    logger.With("handler", "pages"),
	}
}

// StatusRoutes returns the status query route group. The paths live
// under /images for compatibility with existing clients.
func (h *Handler) StatusRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/images",
		Description: "document and page status",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/pdf-status/{document_id}", Handler: h.DocumentStatus},
			{Method: http.MethodGet, Pattern: "/processing-status/{page_id}", Handler: h.PageStatus},
		},
	}
}

// ResultRoutes returns the result query route group.
func (h *Handler) ResultRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/results",
		Description: "page screening results",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/user/all", Handler: h.AllResults},
			{Method: http.MethodGet, Pattern: "/{page_id}", Handler: h.Results},
		},
	}
}

type pageStatusEntry struct {
	ID             uuid.UUID `json:"id"`
	SequenceNumber int       `json:"sequence_number"`
	Status         Status    `json:"status"`
	Error          *string   `json:"error,omitempty"`
}

// DocumentStatus reports the owner-scoped aggregate screening state of
// one document.
func (h *Handler) DocumentStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	documentID, err := uuid.Parse(r.PathValue("document_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	// Owner scoping happens on the document lookup: a foreign document
	// is indistinguishable from a missing one.
	doc, err := h.documents.Find(r.Context(), ownerID, documentID)
	if err != nil {
		handlers.RespondError(w, h.logger, documents.MapHTTPStatus(err), err)
		return
	}

	result, err := h.pages.ListByDocument(r.Context(), doc.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	processed := 0
	images := make([]pageStatusEntry, len(result))
	for i, p := range result {
		if p.Terminal() {
			processed++
		}
		images[i] = pageStatusEntry{
			ID:             p.ID,
			SequenceNumber: p.SequenceNumber,
			Status:         p.Status,
			Error:          p.Error,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"document_id":     doc.ID,
		"status":          Aggregate(result),
		"total_pages":     len(result),
		"processed_pages": processed,
		"images":          images,
	})
}

// PageStatus reports the state of a single page.
func (h *Handler) PageStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	pageID, err := uuid.Parse(r.PathValue("page_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page, err := h.pages.Find(r.Context(), ownerID, pageID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	payload := map[string]any{
		"page_id":       page.ID,
		"status":        page.Status,
		"is_completed":  page.Status == StatusCompleted,
		"is_processing": page.Status == StatusProcessing,
		"is_failed":     page.Status == StatusFailed,
	}
	if page.Error != nil {
		payload["error"] = *page.Error
	}
	if page.ReportKey != nil {
		payload["result_pdf"] = h.storage.URL(*page.ReportKey)
	}

	handlers.RespondJSON(w, http.StatusOK, payload)
}

// Results returns the final screening payload for one page.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	pageID, err := uuid.Parse(r.PathValue("page_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page, err := h.pages.Find(r.Context(), ownerID, pageID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.resultPayload(page))
}

// AllResults returns the caller's screening results, newest first.
func (h *Handler) AllResults(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	result, err := h.pages.ListByOwner(r.Context(), ownerID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	results := make([]map[string]any, len(result))
	for i, p := range result {
		results[i] = h.resultPayload(p)
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) resultPayload(page *Page) map[string]any {
	payload := map[string]any{
		"page_id":           page.ID,
		"status":            page.Status,
		"file_url":          h.storage.URL(page.StorageKey),
		"extraction_result": rawOrNull(page.ExtractionResult),
		"zones_result":      rawOrNull(page.ZonesResult),
		"summary_pdf":       nil,
	}
	if page.ReportKey != nil {
		payload["summary_pdf"] = h.storage.URL(*page.ReportKey)
	}
	return payload
}

func rawOrNull(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
