package report_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/analysis"
	"github.com/efoncier/survey-lab/internal/report"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func testRaster(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 40, 60))
	for x := 0; x < 40; x++ {
		for y := 0; y < 60; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 220, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode raster: %v", err)
	}
	return buf.Bytes()
}

func clearZones() analysis.ZoneReport {
	zones := make(analysis.ZoneReport, len(analysis.Categories))
	for _, category := range analysis.Categories {
		zones[category] = analysis.VerdictClear
	}
	return zones
}

func TestGenerator_Generate(t *testing.T) {
	gen := report.New(discard())

	pdf, err := gen.Generate(context.Background(), clearZones(), testRaster(t), uuid.New())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if len(pdf) == 0 {
		t.Fatal("Generate() returned empty document")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header: %q", pdf[:min(8, len(pdf))])
	}
}

func TestGenerator_Generate_OverlapVerdicts(t *testing.T) {
	gen := report.New(discard())

	zones := clearZones()
	zones["dpl"] = analysis.VerdictOverlap
	zones["zone_inondable"] = analysis.VerdictOverlap

	pdf, err := gen.Generate(context.Background(), zones, testRaster(t), uuid.New())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with PDF header")
	}
}

func TestGenerator_Generate_UndecodableRaster(t *testing.T) {
	gen := report.New(discard())

	// A broken raster only drops the thumbnail; the verdict card still renders.
	pdf, err := gen.Generate(context.Background(), clearZones(), []byte("not an image"), uuid.New())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with PDF header")
	}
}

func TestGenerator_Generate_CancelledContext(t *testing.T) {
	gen := report.New(discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gen.Generate(ctx, clearZones(), testRaster(t), uuid.New()); err == nil {
		t.Error("Generate() with cancelled context should fail")
	}
}
