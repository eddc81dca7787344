// Package render rasterizes PDF pages to PNG images. Two engines are
// available: fitz renders in-process through MuPDF, magick shells out
// to ImageMagick via document-context. The engine is selected by
// configuration.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrRenderFailed indicates a page could not be rasterized.
var ErrRenderFailed = errors.New("render failed")

// PageImage is one rasterized page. Number is 1-based.
type PageImage struct {
	Number int
	PNG    []byte
}

// Renderer rasterizes every page of a PDF.
type Renderer interface {
	Render(ctx context.Context, pdf []byte) ([]PageImage, error)
}

// New creates a renderer from configuration.
func New(config *Config, logger *slog.Logger) (Renderer, error) {
	log := logger.With("system", "render")

	switch config.Engine {
	case EngineFitz:
		log.Info("renderer started", "engine", EngineFitz, "dpi", config.DPI)
		return &fitzRenderer{dpi: config.DPI, logger: log}, nil
	case EngineMagick:
		log.Info("renderer started", "engine", EngineMagick, "dpi", config.DPI)
		return &magickRenderer{dpi: config.DPI, logger: log}, nil
	default:
		return nil, fmt.Errorf("unknown render engine: %s", config.Engine)
	}
}
