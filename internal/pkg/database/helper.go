package database

import (
	"gorm.io/gorm"
)

// Paginate returns a scope that applies page-based pagination.
// Page is 1-based; out-of-range values fall back to sane defaults.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 {
			page = 1
		}
		if pageSize <= 0 {
			pageSize = 20
		}

		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

// OrderBy returns a scope that applies ordering
func OrderBy(field string, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if field == "" {
			return db
		}
		if desc {
			return db.Order(field + " DESC")
		}
		return db.Order(field + " ASC")
	}
}
