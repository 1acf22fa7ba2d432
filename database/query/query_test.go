package query

import (
	"net/url"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	p, err := Parse(url.Values{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.Page != 1 || p.PageSize != 20 {
		t.Errorf("expected page=1 pageSize=20, got %d/%d", p.Page, p.PageSize)
	}
	if p.From != nil || p.To != nil {
		t.Error("expected no date bounds by default")
	}
}

func TestParse_Pagination(t *testing.T) {
	p, err := Parse(url.Values{"page": {"3"}, "pageSize": {"50"}})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.Page != 3 || p.PageSize != 50 {
		t.Errorf("expected page=3 pageSize=50, got %d/%d", p.Page, p.PageSize)
	}
}

func TestParse_InvalidPagination(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"zero page", url.Values{"page": {"0"}}},
		{"negative page", url.Values{"page": {"-1"}}},
		{"non-numeric page", url.Values{"page": {"abc"}}},
		{"zero pageSize", url.Values{"pageSize": {"0"}}},
		{"oversized pageSize", url.Values{"pageSize": {"500"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.values); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParse_SortOrder(t *testing.T) {
	p, err := Parse(url.Values{"sortBy": {"departure_at"}, "sortOrder": {"desc"}})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.SortBy != "departure_at" || p.SortOrder != "desc" {
		t.Errorf("unexpected sort %q/%q", p.SortBy, p.SortOrder)
	}

	if _, err := Parse(url.Values{"sortOrder": {"sideways"}}); err == nil {
		t.Error("expected error for unknown sortOrder")
	}
}

func TestParse_RFC3339Dates(t *testing.T) {
	p, err := Parse(url.Values{
		"from": {"2026-03-01T10:00:00Z"},
		"to":   {"2026-03-02T10:00:00Z"},
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.From == nil || !p.From.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected from %v", p.From)
	}
	if p.To == nil || !p.To.Equal(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected to %v", p.To)
	}
}

func TestParse_BareDateUpperBoundWidened(t *testing.T) {
	p, err := Parse(url.Values{"from": {"2026-03-01"}, "to": {"2026-03-01"}})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.From == nil || !p.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected from %v", p.From)
	}
	// Upper bound covers the full day.
	wantTo := time.Date(2026, 3, 1, 23, 59, 59, 999999999, time.UTC)
	if p.To == nil || !p.To.Equal(wantTo) {
		t.Errorf("expected to=%v, got %v", wantTo, p.To)
	}
}

func TestParse_InvalidDate(t *testing.T) {
	if _, err := Parse(url.Values{"from": {"2026/03/01"}}); err == nil {
		t.Error("expected error for unsupported date format")
	}
}
