// Package report renders the per-page screening summary: a drawn card
// with the zone verdict table and a thumbnail of the source raster,
// assembled into a single-page PDF.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/efoncier/survey-lab/internal/analysis"
)

// EnvReportFont points at a TTF file used for report text. Unset, the
// built-in bitmap face is used.
const EnvReportFont = "REPORT_FONT"

// ErrReportFailed indicates the summary could not be generated.
var ErrReportFailed = errors.New("report generation failed")

// Card dimensions, A4 at 150 dpi.
const (
	cardWidth  = 1240
	cardHeight = 1754
	margin     = 80.0
)

// Generator produces the screening summary PDF for one page.
type Generator interface {
	Generate(ctx context.Context, zones analysis.ZoneReport, raster []byte, pageID uuid.UUID) ([]byte, error)
}

type generator struct {
	titleFace font.Face
	bodyFace  font.Face
	logger    *slog.Logger
}

// New creates a report generator. A TTF configured through REPORT_FONT
// replaces the built-in bitmap face.
func New(logger *slog.Logger) Generator {
	g := &generator{
		titleFace: basicfont.Face7x13,
		bodyFace:  basicfont.Face7x13,
		logger:    logger.With("system", "report"),
	}

	if path := os.Getenv(EnvReportFont); path != "" {
		title, body, err := loadFaces(path)
		if err != nil {
			g.logger.Warn("report font unavailable, using built-in face", "path", path, "error", err)
		} else {
			g.titleFace = title
			g.bodyFace = body
		}
	}

	return g
}

func loadFaces(path string) (font.Face, font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	title := truetype.NewFace(parsed, &truetype.Options{Size: 44})
	body := truetype.NewFace(parsed, &truetype.Options{Size: 26})
	return title, body, nil
}

func (g *generator) Generate(ctx context.Context, zones analysis.ZoneReport, raster []byte, pageID uuid.UUID) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	card, err := g.drawCard(zones, raster, pageID)
	if err != nil {
		return nil, err
	}

	var pdf bytes.Buffer
	if err := api.ImportImages(nil, &pdf, []io.Reader{bytes.NewReader(card)}, nil, nil); err != nil {
		return nil, fmt.Errorf("%w: assemble pdf: %v", ErrReportFailed, err)
	}

	g.logger.Debug("report generated", "page_id", pageID, "bytes", pdf.Len())
	return pdf.Bytes(), nil
}

func (g *generator) drawCard(zones analysis.ZoneReport, raster []byte, pageID uuid.UUID) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFontFace(g.titleFace)
	dc.DrawString("Land Screening Report", margin, margin+20)

	dc.SetFontFace(g.bodyFace)
	dc.DrawString(fmt.Sprintf("Page %s", pageID), margin, margin+70)

	y := margin + 140
	dc.DrawString("Category", margin, y)
	dc.DrawString("Verdict", margin+520, y)

	dc.SetLineWidth(2)
	dc.DrawLine(margin, y+12, cardWidth-margin, y+12)
	dc.Stroke()

	y += 50
	for _, category := range analysis.Categories {
		verdict, ok := zones[category]
		if !ok {
			verdict = analysis.VerdictClear
		}

		if verdict != analysis.VerdictClear {
			dc.SetRGB(0.75, 0.1, 0.1)
		} else {
			dc.SetRGB(0.1, 0.1, 0.1)
		}

		dc.DrawString(category, margin, y)
		dc.DrawString(verdict, margin+520, y)
		y += 40
	}

	if thumb, err := g.thumbnail(raster); err != nil {
		g.logger.Warn("report thumbnail skipped", "page_id", pageID, "error", err)
	} else {
		dc.DrawImage(thumb, int(margin), int(y)+40)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("%w: encode card: %v", ErrReportFailed, err)
	}
	return buf.Bytes(), nil
}

// thumbnail scales the source raster to fit the card's lower half.
func (g *generator) thumbnail(raster []byte) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raster))
	if err != nil {
		return nil, err
	}

	maxW := cardWidth - 2*int(margin)
	maxH := 560

	bounds := src.Bounds()
	scale := min(
		float64(maxW)/float64(bounds.Dx()),
		float64(maxH)/float64(bounds.Dy()),
	)
	if scale > 1 {
		scale = 1
	}

	w := int(float64(bounds.Dx()) * scale)
	h := int(float64(bounds.Dy()) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst, nil
}
