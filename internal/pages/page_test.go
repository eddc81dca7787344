package pages_test

import (
	"testing"

	"github.com/efoncier/survey-lab/internal/pages"
)

func withStatuses(statuses ...pages.Status) []*pages.Page {
	result := make([]*pages.Page, len(statuses))
	for i, status := range statuses {
		result[i] = &pages.Page{Status: status}
	}
	return result
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		pages []*pages.Page
		want  pages.Status
	}{
		{
			name:  "no pages yet",
			pages: nil,
			want:  pages.StatusProcessing,
		},
		{
			name:  "all completed",
			pages: withStatuses(pages.StatusCompleted, pages.StatusCompleted),
			want:  pages.StatusCompleted,
		},
		{
			name:  "all failed",
			pages: withStatuses(pages.StatusFailed, pages.StatusFailed),
			want:  pages.StatusFailed,
		},
		{
			name:  "mixed terminal outcomes",
			pages: withStatuses(pages.StatusCompleted, pages.StatusFailed),
			want:  pages.StatusProcessing,
		},
		{
			name:  "still in flight",
			pages: withStatuses(pages.StatusCompleted, pages.StatusProcessing),
			want:  pages.StatusProcessing,
		},
		{
			name:  "single failure among successes",
			pages: withStatuses(pages.StatusCompleted, pages.StatusFailed, pages.StatusCompleted),
			want:  pages.StatusProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pages.Aggregate(tt.pages); got != tt.want {
				t.Errorf("Aggregate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPage_Terminal(t *testing.T) {
	tests := []struct {
		status pages.Status
		want   bool
	}{
		{pages.StatusProcessing, false},
		{pages.StatusCompleted, true},
		{pages.StatusFailed, true},
	}

	for _, tt := range tests {
		page := &pages.Page{Status: tt.status}
		if got := page.Terminal(); got != tt.want {
			t.Errorf("Terminal() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}
