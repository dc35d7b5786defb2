package models

import (
	"time"

	"gorm.io/gorm"
)

// Past and upcoming are both strict: a show starting exactly at now is in
// neither set.

func UpcomingShows(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`"show".start_time > ?`, now.UTC())
	}
}

func PastShows(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`"show".start_time < ?`, now.UTC())
	}
}

// NameContains matches name case-insensitively as a substring. LOWER/LIKE is
// used instead of ILIKE so the same query runs on postgres and sqlite.
func NameContains(table, term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+table+".name) LIKE LOWER(?)", "%"+term+"%")
	}
}
