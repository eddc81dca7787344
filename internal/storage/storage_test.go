package storage_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/efoncier/survey-lab/internal/storage"
)

func newStore(t *testing.T) storage.Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store, err := storage.New(&storage.Config{
		Root:          t.TempDir(),
		MaxUploadSize: "32MB",
		PublicBaseURL: "http://localhost:8080/files",
	}, logger)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return store
}

func TestFileStore_WriteRead(t *testing.T) {
	store := newStore(t)
	content := []byte("raster bytes")

	n, err := store.Write("rasters/doc-1/page-001.png", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("Write() = %d bytes, want %d", n, len(content))
	}

	got, err := store.Read("rasters/doc-1/page-001.png")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Read() = %q, want %q", got, content)
	}
}

func TestFileStore_Open(t *testing.T) {
	store := newStore(t)
	content := []byte("report")

	if _, err := store.Write("reports/a.pdf", bytes.NewReader(content)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	rc, err := store.Open("reports/a.pdf")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Open() content = %q, want %q", got, content)
	}
}

func TestFileStore_ReadMissing(t *testing.T) {
	store := newStore(t)

	_, err := store.Read("missing/key.png")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Read() = %v, want ErrNotFound", err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	store := newStore(t)

	if _, err := store.Write("pdfs/source.pdf", bytes.NewReader([]byte("x"))); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if err := store.Delete("pdfs/source.pdf"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := store.Read("pdfs/source.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Read() after delete = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is not an error.
	if err := store.Delete("pdfs/source.pdf"); err != nil {
		t.Errorf("Delete() on missing key = %v, want nil", err)
	}
}

func TestFileStore_RootKeyRejected(t *testing.T) {
	store := newStore(t)

	if _, err := store.Write("..", bytes.NewReader([]byte("x"))); err == nil {
		t.Error("Write() with root-escaping key should fail")
	}
}

func TestFileStore_URL(t *testing.T) {
	store := newStore(t)

	got := store.URL("reports/doc/page-001.pdf")
	want := "http://localhost:8080/files/reports/doc/page-001.pdf"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
