// Package analysis screens rasterized survey plan pages in two stages:
// feature extraction reads the parcel geometry and survey metadata off
// the page, zone classification checks the parcel against the
// regulated land categories. The stub engine produces deterministic
// results and stands in until a model-backed engine is wired.
package analysis

import (
	"context"
	"errors"
)

// ErrAnalysisFailed indicates a page could not be analyzed.
var ErrAnalysisFailed = errors.New("analysis failed")

// Categories lists the regulated land categories every page is
// screened against.
var Categories = []string{
	"air",
	"air_proteges",
	"dpl",
	"dpm",
	"enregistrement_personnel",
	"litige",
	"parcelles",
	"restriction",
	"tf_demande",
	"tf_en_cours",
	"tf_etat",
	"titre_reconstitue",
	"zone_inondable",
}

// Zone overlap verdicts.
const (
	VerdictClear   = "NON"
	VerdictOverlap = "OUI"
)

// Point is a parcel vertex in projected coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Extraction holds the features read off one page.
type Extraction struct {
	ParcelNumber string  `json:"parcel_number"`
	AreaSqMeters float64 `json:"area_sq_meters"`
	Vertices     []Point `json:"vertices"`
	Commune      string  `json:"commune"`
	Confidence   float64 `json:"confidence"`
}

// ZoneReport maps each regulated category to its overlap verdict.
type ZoneReport map[string]string

// Engine runs the two analysis stages on a rasterized page.
type Engine interface {
	// ExtractFeatures reads parcel features from the page image.
	ExtractFeatures(ctx context.Context, pageNumber int, png []byte) (*Extraction, error)

	// ClassifyZones screens the extracted parcel against every
	// regulated category.
	ClassifyZones(ctx context.Context, extraction *Extraction) (ZoneReport, error)
}
