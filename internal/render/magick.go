package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	dcconfig "github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	dcimage "github.com/JaimeStill/document-context/pkg/image"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// magickRenderer rasterizes pages by shelling out to ImageMagick.
// document-context operates on files, so the PDF is staged in a
// temporary directory for the duration of the render.
type magickRenderer struct {
	dpi    int
	logger *slog.Logger
}

func (r *magickRenderer) Render(ctx context.Context, pdf []byte) ([]PageImage, error) {
	count, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrRenderFailed)
	}

	dir, err := os.MkdirTemp("", "render-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "source.pdf")
	if err := os.WriteFile(path, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	doc, err := document.Open(path, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer doc.Close()

	renderer, err := dcimage.NewImageMagickRenderer(dcconfig.ImageConfig{
		Format: "png",
		DPI:    r.dpi,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	pages := make([]PageImage, 0, count)
	for i := 1; i <= count; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page, err := doc.ExtractPage(i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrRenderFailed, i, err)
		}

		data, err := page.ToImage(renderer, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrRenderFailed, i, err)
		}

		pages = append(pages, PageImage{Number: i, PNG: data})
	}

	r.logger.Debug("pages rendered", "engine", EngineMagick, "pages", count)
	return pages, nil
}
