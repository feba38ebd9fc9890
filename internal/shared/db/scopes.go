package db

import (
	"gorm.io/gorm"
)

// NotDeletedWithAlias filters out soft-deleted rows of the aliased table.
// Needed on joined queries where gorm only applies the soft delete clause to
// the model table.
//
//	db.Table("services s").Joins("LEFT JOIN clients c ON ...").Scopes(db.NotDeletedWithAlias("c"))
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias + ".deleted_at IS NULL")
	}
}

// Paginate applies limit/offset for a 1-based page.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// WithTrashed disables the soft delete clause when enabled is true.
func WithTrashed(enabled bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if enabled {
			return db.Unscoped()
		}
		return db
	}
}
