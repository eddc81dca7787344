package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/efoncier/survey-lab/pkg/repository"
)

var (
	errNotFound  = errors.New("record not found")
	errDuplicate = errors.New("record already exists")
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows maps to not found", sql.ErrNoRows, errNotFound},
		{"wrapped no rows maps to not found", fmt.Errorf("query: %w", sql.ErrNoRows), errNotFound},
		{"unique violation maps to duplicate", &pgconn.PgError{Code: "23505"}, errDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapError_PassesThroughOtherErrors(t *testing.T) {
	driverErr := errors.New("connection reset")
	if got := repository.MapError(driverErr, errNotFound, errDuplicate); got != driverErr {
		t.Errorf("MapError() = %v, want %v", got, driverErr)
	}

	fkErr := &pgconn.PgError{Code: "23503"}
	got := repository.MapError(fkErr, errNotFound, errDuplicate)

	var pgErr *pgconn.PgError
	if !errors.As(got, &pgErr) || pgErr.Code != "23503" {
		t.Errorf("MapError() = %v, want original pg error", got)
	}
}
