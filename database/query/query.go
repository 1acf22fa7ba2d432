// Package query provides list-query helpers for GORM: pagination, sorting,
// and inclusive date-range filtering shared by the record-listing endpoints.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Params holds parsed list-query parameters.
type Params struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	From      *time.Time
	To        *time.Time
}

// Pagination metadata returned in paginated results.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is a paginated response.
type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Config defines entity-specific query behavior.
type Config struct {
	// AllowedSortFields whitelists sortable columns.
	AllowedSortFields []string

	// DefaultSort is the ORDER BY applied when no sort is requested.
	DefaultSort string

	// DateField is the column the from/to range filter applies to.
	DateField string
}

// Parse extracts Params from URL query values. Dates accept RFC 3339 or
// plain YYYY-MM-DD.
func Parse(values url.Values) (Params, error) {
	p := Params{Page: 1, PageSize: 20}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, fmt.Errorf("invalid page %q", raw)
		}
		p.Page = n
	}
	if raw := values.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			return p, fmt.Errorf("invalid pageSize %q", raw)
		}
		p.PageSize = n
	}

	p.SortBy = values.Get("sortBy")
	p.SortOrder = values.Get("sortOrder")
	if p.SortOrder != "" && p.SortOrder != "asc" && p.SortOrder != "desc" {
		return p, fmt.Errorf("invalid sortOrder %q", p.SortOrder)
	}

	var err error
	if p.From, err = parseDate(values.Get("from"), false); err != nil {
		return p, err
	}
	if p.To, err = parseDate(values.Get("to"), true); err != nil {
		return p, err
	}
	return p, nil
}

// parseDate parses a range bound. A bare date used as the upper bound is
// widened to the end of that day so the range stays inclusive.
func parseDate(raw string, upper bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", raw)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
