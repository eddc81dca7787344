// Package registry resolves national personal identifiers (NPI) to
// civil identity records. The fixture source serves a static dataset
// loaded from disk; the synthetic source derives a stable record from
// any well-formed NPI and is intended for development environments.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"regexp"
	"time"
)

// Sentinel errors for registry operations.
var (
	ErrNotFound   = errors.New("person not found")
	ErrInvalidNPI = errors.New("invalid npi")
)

var npiPattern = regexp.MustCompile(`^\d{10}$`)

// Person is a civil identity record resolved from an NPI.
type Person struct {
	NPI        string    `json:"npi"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Sex        string    `json:"sex"`
	BirthDate  time.Time `json:"birth_date"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Profession string    `json:"profession"`
}

// Registry resolves NPIs to identity records.
type Registry interface {
	Lookup(ctx context.Context, npi string) (*Person, error)
}

// New creates a registry from configuration.
func New(config *Config, logger *slog.Logger) (Registry, error) {
	log := logger.With("system", "registry")

	switch config.Source {
	case SourceFixture:
		return newFixture(config.FixturePath, log)
	case SourceSynthetic:
		log.Info("registry started", "source", SourceSynthetic)
		return &synthetic{}, nil
	default:
		return nil, fmt.Errorf("unknown registry source: %s", config.Source)
	}
}

// ValidateNPI reports whether the identifier is well formed.
func ValidateNPI(npi string) error {
	if !npiPattern.MatchString(npi) {
		return ErrInvalidNPI
	}
	return nil
}

type fixture struct {
	persons map[string]*Person
}

func newFixture(path string, logger *slog.Logger) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry fixture: %w", err)
	}

	var records []*Person
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse registry fixture: %w", err)
	}

	persons := make(map[string]*Person, len(records))
	for _, p := range records {
		persons[p.NPI] = p
	}

	logger.Info("registry started", "source", SourceFixture, "persons", len(persons))
	return &fixture{persons: persons}, nil
}

func (f *fixture) Lookup(ctx context.Context, npi string) (*Person, error) {
	if err := ValidateNPI(npi); err != nil {
		return nil, err
	}
	p, ok := f.persons[npi]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

// synthetic derives a deterministic identity from the NPI digits so
// that any well-formed NPI resolves during development.
type synthetic struct{}

var (
	syntheticFirst = []string{"Abdou", "Chantal", "Didier", "Fatima", "Gilles", "Honorine", "Ibrahim", "Judith"}
	syntheticLast  = []string{"Adjovi", "Behanzin", "Dossou", "Gbaguidi", "Hounsou", "Kploka", "Soglo", "Zinsou"}
)

func (s *synthetic) Lookup(ctx context.Context, npi string) (*Person, error) {
	if err := ValidateNPI(npi); err != nil {
		return nil, err
	}

	h := fnv.New32a()
	h.Write([]byte(npi))
	seed := h.Sum32()

	sex := "M"
	if seed%2 == 1 {
		sex = "F"
	}

	return &Person{
		NPI:        npi,
		FirstName:  syntheticFirst[seed%uint32(len(syntheticFirst))],
		LastName:   syntheticLast[(seed>>3)%uint32(len(syntheticLast))],
		Sex:        sex,
		BirthDate:  time.Date(1960+int(seed%40), time.Month(1+seed%12), 1+int(seed%28), 0, 0, 0, 0, time.UTC),
		Email:      fmt.Sprintf("npi%s@example.bj", npi),
		Phone:      fmt.Sprintf("+229%s", npi[2:]),
		Address:    "Cotonou",
		Profession: "geometre",
	}, nil
}
