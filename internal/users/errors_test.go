package users_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/efoncier/survey-lab/internal/users"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", users.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("find user: %w", users.ErrNotFound), http.StatusNotFound},
		{"duplicate", users.ErrDuplicate, http.StatusConflict},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := users.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
