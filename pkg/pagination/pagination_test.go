package pagination_test

import (
	"net/url"
	"testing"

	"github.com/efoncier/survey-lab/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", 0, 0, 1, 20},
		{"negative page clamps to first", -5, 10, 1, 10},
		{"oversized page size clamps to max", 1, 500, 1, 100},
		{"valid values unchanged", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.size}
			req.Normalize(cfg)

			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("Normalize() = page %d size %d, want page %d size %d",
					req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "leve")
	values.Set("sort", "CreatedAt,-SequenceNumber")

	req := pagination.PageRequestFromQuery(values, cfg)

	if req.Page != 2 || req.PageSize != 10 {
		t.Errorf("page/size = %d/%d, want 2/10", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "leve" {
		t.Errorf("Search = %v, want leve", req.Search)
	}
	if len(req.Sort) != 2 || req.Sort[1].Field != "SequenceNumber" || !req.Sort[1].Descending {
		t.Errorf("Sort = %v, want CreatedAt asc, SequenceNumber desc", req.Sort)
	}
}

func TestPageRequestFromQuery_Empty(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, cfg)

	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("page/size = %d/%d, want normalized defaults 1/20", req.Page, req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestNewPageResult(t *testing.T) {
	result := pagination.NewPageResult([]string{"a", "b"}, 45, 2, 10)

	if result.TotalPages != 5 {
		t.Errorf("TotalPages = %d, want 5", result.TotalPages)
	}
	if result.Total != 45 || result.Page != 2 || result.PageSize != 10 {
		t.Errorf("metadata = %+v", result)
	}
}

func TestNewPageResult_EmptyData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 10)

	if result.Data == nil {
		t.Error("Data should be an empty slice, not nil")
	}
	if result.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", result.TotalPages)
	}
}

func TestConfig_Finalize(t *testing.T) {
	c := pagination.Config{}
	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if c.DefaultPageSize != 20 || c.MaxPageSize != 100 {
		t.Errorf("defaults = %d/%d, want 20/100", c.DefaultPageSize, c.MaxPageSize)
	}

	bad := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := bad.Finalize(); err == nil {
		t.Error("Finalize() with default above max should fail")
	}
}
