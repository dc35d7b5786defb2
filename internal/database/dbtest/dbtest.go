// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// New returns a migrated database in t.TempDir(), closed on cleanup.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	return db
}

func CreateVenue(t *testing.T, db *gorm.DB, v models.Venue) models.Venue {
	t.Helper()
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("create venue %q: %v", v.Name, err)
	}
	return v
}

func CreateArtist(t *testing.T, db *gorm.DB, a models.Artist) models.Artist {
	t.Helper()
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create artist %q: %v", a.Name, err)
	}
	return a
}

func CreateShow(t *testing.T, db *gorm.DB, artistID, venueID uint, start time.Time) models.Show {
	t.Helper()
	s := models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start.UTC()}
	if err := db.Omit(clause.Associations).Create(&s).Error; err != nil {
		t.Fatalf("create show: %v", err)
	}
	return s
}

func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
