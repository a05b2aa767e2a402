package persistence

import (
	"strings"

	"github.com/nubeerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// orderColumns are the columns list queries may sort by. Anything else
// falls back to created_at to keep user input out of the ORDER BY clause.
var orderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"date":       true,
	"name":       true,
	"code":       true,
	"reference":  true,
}

// applyFilter applies ordering and pagination from the filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if !orderColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyNoteFilters applies delivery-note specific filter criteria.
// Pagination and ordering are handled separately so counting can reuse it.
func applyNoteFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "partner_id":
			query = query.Where("partner_id = ?", value)
		case "billing_status":
			query = query.Where("billing_status = ?", value)
		case "start_date":
			query = query.Where("date >= ?", value)
		case "end_date":
			query = query.Where("date <= ?", value)
		}
	}
	return query
}
