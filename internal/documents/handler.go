package documents

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/pkg/handlers"
	"github.com/efoncier/survey-lab/pkg/pagination"
	"github.com/efoncier/survey-lab/pkg/routes"
)

// Launcher starts asynchronous processing for an uploaded document.
type Launcher interface {
	Launch(doc *Document, pdf []byte)
}

// Handler provides HTTP endpoints for document operations.
type Handler struct {
	sys           System
	launcher      Launcher
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a document handler with the specified configuration.
func NewHandler(sys System, launcher Launcher, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		launcher:      launcher,
		logger:        logger.With("handler", "documents"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the document management route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/documents",
		Description: "uploaded survey plan documents",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.List},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.Find},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// UploadRoutes returns the upload route group. The path is kept under
// /images for compatibility with existing clients.
func (h *Handler) UploadRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/images",
		Description: "survey plan upload",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/upload-pdf", Handler: h.Upload},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), ownerID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.sys.Find(r.Context(), ownerID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), ownerID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Upload accepts a multipart PDF, stores it, and acknowledges with 202
// before processing starts.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := token.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)
	if contentType != "application/pdf" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotPDF)
		return
	}

	// The count is advisory; the renderer is authoritative. A failure
	// here leaves it unknown rather than rejecting the upload.
	pageCount, err := extractPDFPageCount(data)
	if err != nil {
		h.logger.Warn("page count unavailable", "filename", header.Filename, "error", err)
		pageCount = nil
	}

	doc, err := h.sys.Create(r.Context(), CreateCommand{
		OwnerID:     ownerID,
		Filename:    header.Filename,
		ContentType: contentType,
		SizeBytes:   header.Size,
		PageCount:   pageCount,
		Data:        data,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.launcher.Launch(doc, data)

	handlers.RespondJSON(w, http.StatusAccepted, map[string]any{
		"document_id": doc.ID,
		"status":      doc.Status,
	})
}

func detectContentType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(data []byte) (*int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	return &count, nil
}
