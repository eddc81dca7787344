package render

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"

	"github.com/gen2brain/go-fitz"
)

// fitzRenderer rasterizes pages in-process through MuPDF.
type fitzRenderer struct {
	dpi    int
	logger *slog.Logger
}

func (r *fitzRenderer) Render(ctx context.Context, pdf []byte) ([]PageImage, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer doc.Close()

	count := doc.NumPage()
	if count == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrRenderFailed)
	}

	pages := make([]PageImage, 0, count)
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(i, float64(r.dpi))
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrRenderFailed, i+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("%w: encode page %d: %v", ErrRenderFailed, i+1, err)
		}

		pages = append(pages, PageImage{Number: i + 1, PNG: buf.Bytes()})
	}

	r.logger.Debug("pages rendered", "engine", EngineFitz, "pages", count)
	return pages, nil
}
