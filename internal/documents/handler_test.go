package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/internal/documents"
	"github.com/efoncier/survey-lab/pkg/pagination"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type fakeSystem struct {
	created *documents.CreateCommand
	found   *documents.Document
	findErr error
	delErr  error
}

func (f *fakeSystem) List(ctx context.Context, ownerID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[*documents.Document], error) {
	result := pagination.NewPageResult([]*documents.Document{}, 0, page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeSystem) Find(ctx context.Context, ownerID, id uuid.UUID) (*documents.Document, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.found, nil
}

func (f *fakeSystem) Create(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error) {
	f.created = &cmd
	return &documents.Document{
		ID:       uuid.New(),
		OwnerID:  cmd.OwnerID,
		Filename: cmd.Filename,
		Status:   documents.StatusUploading,
	}, nil
}

func (f *fakeSystem) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return f.delErr
}

func (f *fakeSystem) SetStatus(ctx context.Context, id uuid.UUID, status documents.Status) error {
	return nil
}

func (f *fakeSystem) SetPageCount(ctx context.Context, id uuid.UUID, count int) error {
	return nil
}

func (f *fakeSystem) Fail(ctx context.Context, id uuid.UUID, message string) error {
	return nil
}

type fakeLauncher struct {
	launched bool
	pdf      []byte
}

func (f *fakeLauncher) Launch(doc *documents.Document, pdf []byte) {
	f.launched = true
	f.pdf = pdf
}

func newHandler(sys *fakeSystem, launcher *fakeLauncher) *documents.Handler {
	return documents.NewHandler(sys, launcher, discard(),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, 32<<20)
}

// onePagePDF builds a valid single-page PDF from a generated image.
func onePagePDF(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	var pdf bytes.Buffer
	if err := api.ImportImages(nil, &pdf, []io.Reader{&pngBuf}, nil, nil); err != nil {
		t.Fatalf("assemble pdf: %v", err)
	}
	return pdf.Bytes()
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/images/upload-pdf", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func authed(req *http.Request, ownerID uuid.UUID) *http.Request {
	return req.WithContext(token.WithUserID(req.Context(), ownerID))
}

func TestHandler_Upload(t *testing.T) {
	sys := &fakeSystem{}
	launcher := &fakeLauncher{}
	handler := newHandler(sys, launcher)

	pdf := onePagePDF(t)
	req := authed(multipartUpload(t, "leve.pdf", "application/pdf", pdf), uuid.New())
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body.String())
	}

	var payload struct {
		DocumentID uuid.UUID `json:"document_id"`
		Status     string    `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.DocumentID == uuid.Nil {
		t.Error("document_id missing from acknowledgement")
	}

	if sys.created == nil {
		t.Fatal("Create() never called")
	}
	if sys.created.PageCount == nil || *sys.created.PageCount != 1 {
		t.Errorf("PageCount = %v, want 1", sys.created.PageCount)
	}
	if sys.created.Filename != "leve.pdf" {
		t.Errorf("Filename = %q, want %q", sys.created.Filename, "leve.pdf")
	}

	if !launcher.launched {
		t.Error("processing never launched")
	}
	if !bytes.Equal(launcher.pdf, pdf) {
		t.Error("launcher received different bytes than the upload")
	}
}

func TestHandler_Upload_RejectsNonPDF(t *testing.T) {
	handler := newHandler(&fakeSystem{}, &fakeLauncher{})

	req := authed(multipartUpload(t, "notes.txt", "text/plain", []byte("plain text")), uuid.New())
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// The synchronous page count is advisory. A PDF the counter cannot
// parse is still accepted; the renderer decides its fate.
func TestHandler_Upload_UnparseablePageCount(t *testing.T) {
	sys := &fakeSystem{}
	launcher := &fakeLauncher{}
	handler := newHandler(sys, launcher)

	req := authed(multipartUpload(t, "broken.pdf", "application/pdf", []byte("%PDF-garbage")), uuid.New())
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if sys.created == nil {
		t.Fatal("Create() never called")
	}
	if sys.created.PageCount != nil {
		t.Errorf("PageCount = %v, want nil", sys.created.PageCount)
	}
	if !launcher.launched {
		t.Error("processing never launched")
	}
}

func TestHandler_Upload_Unauthenticated(t *testing.T) {
	handler := newHandler(&fakeSystem{}, &fakeLauncher{})

	req := multipartUpload(t, "leve.pdf", "application/pdf", []byte("x"))
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandler_Find_NotFound(t *testing.T) {
	handler := newHandler(&fakeSystem{findErr: documents.ErrNotFound}, &fakeLauncher{})

	req := httptest.NewRequest(http.MethodGet, "/documents/"+uuid.NewString(), nil)
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.Find(rec, authed(req, uuid.New()))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandler_Find_InvalidID(t *testing.T) {
	handler := newHandler(&fakeSystem{}, &fakeLauncher{})

	req := httptest.NewRequest(http.MethodGet, "/documents/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()

	handler.Find(rec, authed(req, uuid.New()))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandler_Delete(t *testing.T) {
	handler := newHandler(&fakeSystem{}, &fakeLauncher{})

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	handler.Delete(rec, authed(req, uuid.New()))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestHandler_Delete_OwnerScoped(t *testing.T) {
	handler := newHandler(&fakeSystem{delErr: documents.ErrNotFound}, &fakeLauncher{})

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	handler.Delete(rec, authed(req, uuid.New()))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
