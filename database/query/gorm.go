package query

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetgrid/fleetgrid/util"
)

// ApplyToGorm applies params to a GORM query and returns a paginated result.
func ApplyToGorm[T any](db *gorm.DB, params Params, config Config) (*Result[T], error) {
	q := db.Session(&gorm.Session{}).Model(new(T))

	q = ApplyDateRange(q, params, config)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	q = applySort(q, params.SortBy, params.SortOrder, config)

	offset := (params.Page - 1) * params.PageSize
	q = q.Offset(offset).Limit(params.PageSize)

	var data []T
	if err := q.Find(&data).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	totalPages := (int(total) + params.PageSize - 1) / params.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &Result[T]{
		Data: data,
		Pagination: Pagination{
			Page: params.Page, PageSize: params.PageSize,
			Total: int(total), TotalPages: totalPages,
		},
	}, nil
}

// ApplyDateRange adds inclusive bounds on the configured date column.
func ApplyDateRange(db *gorm.DB, params Params, config Config) *gorm.DB {
	if config.DateField == "" {
		return db
	}
	if params.From != nil {
		db = db.Where(fmt.Sprintf("%s >= ?", config.DateField), *params.From)
	}
	if params.To != nil {
		db = db.Where(fmt.Sprintf("%s <= ?", config.DateField), *params.To)
	}
	return db
}

func applySort(db *gorm.DB, sortBy, sortOrder string, config Config) *gorm.DB {
	if sortBy != "" && util.Contains(config.AllowedSortFields, sortBy) {
		order := sortBy
		if sortOrder == "desc" {
			order += " DESC"
		}
		return db.Order(order)
	}
	if config.DefaultSort != "" {
		return db.Order(config.DefaultSort)
	}
	return db
}
