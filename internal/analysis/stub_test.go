package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/efoncier/survey-lab/internal/analysis"
)

func TestStub_ExtractFeatures_Deterministic(t *testing.T) {
	engine := analysis.NewStub()
	png := []byte("not-a-real-png-but-stable-bytes")

	first, err := engine.ExtractFeatures(context.Background(), 1, png)
	if err != nil {
		t.Fatalf("ExtractFeatures() failed: %v", err)
	}

	second, err := engine.ExtractFeatures(context.Background(), 1, png)
	if err != nil {
		t.Fatalf("ExtractFeatures() failed: %v", err)
	}

	if first.ParcelNumber != second.ParcelNumber {
		t.Errorf("ParcelNumber varies: %q vs %q", first.ParcelNumber, second.ParcelNumber)
	}
	if first.AreaSqMeters != second.AreaSqMeters {
		t.Errorf("AreaSqMeters varies: %v vs %v", first.AreaSqMeters, second.AreaSqMeters)
	}
	if len(first.Vertices) != 4 {
		t.Errorf("len(Vertices) = %d, want 4", len(first.Vertices))
	}
	if first.Confidence < 0.5 || first.Confidence > 1.0 {
		t.Errorf("Confidence = %v, want in [0.5, 1.0]", first.Confidence)
	}
}

func TestStub_ExtractFeatures_EmptyImage(t *testing.T) {
	engine := analysis.NewStub()

	_, err := engine.ExtractFeatures(context.Background(), 1, nil)
	if !errors.Is(err, analysis.ErrAnalysisFailed) {
		t.Errorf("err = %v, want ErrAnalysisFailed", err)
	}
}

func TestStub_ClassifyZones_CoversAllCategories(t *testing.T) {
	engine := analysis.NewStub()

	extraction, err := engine.ExtractFeatures(context.Background(), 1, []byte("page"))
	if err != nil {
		t.Fatalf("ExtractFeatures() failed: %v", err)
	}

	report, err := engine.ClassifyZones(context.Background(), extraction)
	if err != nil {
		t.Fatalf("ClassifyZones() failed: %v", err)
	}

	if len(report) != len(analysis.Categories) {
		t.Errorf("len(report) = %d, want %d", len(report), len(analysis.Categories))
	}

	for _, category := range analysis.Categories {
		verdict, ok := report[category]
		if !ok {
			t.Errorf("category %q missing from report", category)
			continue
		}
		if verdict != analysis.VerdictClear && verdict != analysis.VerdictOverlap {
			t.Errorf("report[%q] = %q, want %q or %q",
				category, verdict, analysis.VerdictClear, analysis.VerdictOverlap)
		}
	}
}

func TestStub_ClassifyZones_MissingExtraction(t *testing.T) {
	engine := analysis.NewStub()

	_, err := engine.ClassifyZones(context.Background(), nil)
	if !errors.Is(err, analysis.ErrAnalysisFailed) {
		t.Errorf("err = %v, want ErrAnalysisFailed", err)
	}
}
