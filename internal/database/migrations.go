package database

import (
	"fmt"
	"sort"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migration is one forward/backward schema step. Version strings sort in
// application order.
type Migration struct {
	Version string
	Name    string
	Up      func(tx *gorm.DB) error
	Down    func(tx *gorm.DB) error
}

// SchemaMigration records an applied Migration.
type SchemaMigration struct {
	Version   string `gorm:"primaryKey;size:32"`
	Name      string
	AppliedAt time.Time
}

func (SchemaMigration) TableName() string { return "schema_migration" }

type MigrationStatus struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Table shapes as they stood before 0002. Later columns are added to the real
// models by name.

type venueV1 struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	City         string `gorm:"size:120"`
	State        string `gorm:"size:120"`
	Address      string `gorm:"size:120"`
	Phone        string `gorm:"size:120"`
	ImageLink    string `gorm:"size:500"`
	FacebookLink string `gorm:"size:120"`
	Website      string `gorm:"size:120"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (venueV1) TableName() string { return "venue" }

type artistV1 struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	City         string `gorm:"size:120"`
	State        string `gorm:"size:120"`
	Phone        string `gorm:"size:120"`
	ImageLink    string `gorm:"size:500"`
	FacebookLink string `gorm:"size:120"`
	Website      string `gorm:"size:120"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (artistV1) TableName() string { return "artist" }

type showV1 struct {
	ID        uint      `gorm:"primaryKey"`
	StartTime time.Time `gorm:"not null;index:idx_show_start_time"`
	ArtistID  uint      `gorm:"not null"`
	VenueID   uint      `gorm:"not null"`
	CreatedAt time.Time

	Artist artistV1 `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
	Venue  venueV1  `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE"`
}

func (showV1) TableName() string { return "show" }

var (
	venueV2Columns  = []string{"Genres", "SeekingTalent", "SeekingDescription"}
	artistV2Columns = []string{"Genres", "SeekingVenue", "SeekingDescription"}
)

var migrations = []Migration{
	{
		Version: "0001",
		Name:    "create venue, artist and show",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&venueV1{}, &artistV1{}, &showV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&showV1{}, &artistV1{}, &venueV1{})
		},
	},
	{
		Version: "0002",
		Name:    "add genres and seeking columns",
		Up: func(tx *gorm.DB) error {
			if err := addColumns(tx, &models.Venue{}, venueV2Columns); err != nil {
				return err
			}
			return addColumns(tx, &models.Artist{}, artistV2Columns)
		},
		Down: func(tx *gorm.DB) error {
			if err := dropColumns(tx, &models.Artist{}, artistV2Columns); err != nil {
				return err
			}
			return dropColumns(tx, &models.Venue{}, venueV2Columns)
		},
	},
}

func addColumns(tx *gorm.DB, model interface{}, fields []string) error {
	m := tx.Migrator()
	for _, field := range fields {
		if m.HasColumn(model, field) {
			continue
		}
		if err := m.AddColumn(model, field); err != nil {
			return fmt.Errorf("add column %s: %w", field, err)
		}
	}
	return nil
}

func dropColumns(tx *gorm.DB, model interface{}, fields []string) error {
	m := tx.Migrator()
	for _, field := range fields {
		if !m.HasColumn(model, field) {
			continue
		}
		if err := m.DropColumn(model, field); err != nil {
			return fmt.Errorf("drop column %s: %w", field, err)
		}
	}
	return nil
}

// Migrate applies every pending migration in version order, each in its own
// transaction. Applying an up-to-date schema is a no-op.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migration: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s (%s): %w", m.Version, m.Name, err)
		}

		log.Info().Str("version", m.Version).Str("name", m.Name).Msg("Applied migration")
	}

	return nil
}

// Rollback reverts the latest applied migrations. steps <= 0 reverts all.
func Rollback(db *gorm.DB, steps int) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migration: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	reverted := 0
	for i := len(migrations) - 1; i >= 0; i-- {
		if steps > 0 && reverted >= steps {
			break
		}

		m := migrations[i]
		if _, ok := applied[m.Version]; !ok {
			continue
		}

		err := withoutForeignKeys(db, func() error {
			return db.Transaction(func(tx *gorm.DB) error {
				if err := m.Down(tx); err != nil {
					return err
				}
				if err := checkForeignKeys(tx); err != nil {
					return err
				}
				return tx.Delete(&SchemaMigration{}, "version = ?", m.Version).Error
			})
		})
		if err != nil {
			return fmt.Errorf("failed to revert migration %s (%s): %w", m.Version, m.Name, err)
		}

		log.Info().Str("version", m.Version).Str("name", m.Name).Msg("Reverted migration")
		reverted++
	}

	return nil
}

// withoutForeignKeys runs fn with SQLite foreign key enforcement switched off.
// SQLite rebuilds a table to drop a column, and the rebuild's DROP TABLE would
// otherwise cascade into show. The pragma is a no-op inside a transaction, so
// it is set on the pool's single connection before fn opens one.
func withoutForeignKeys(db *gorm.DB, fn func() error) error {
	if db.Dialector.Name() != "sqlite" {
		return fn()
	}

	if err := db.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return fmt.Errorf("failed to disable foreign keys: %w", err)
	}
	fnErr := fn()
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil && fnErr == nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return fnErr
}

// checkForeignKeys fails when a SQLite step left rows pointing at missing
// parents. Other drivers enforce constraints during the step itself.
func checkForeignKeys(tx *gorm.DB) error {
	if tx.Dialector.Name() != "sqlite" {
		return nil
	}

	var violations []map[string]interface{}
	if err := tx.Raw("PRAGMA foreign_key_check").Scan(&violations).Error; err != nil {
		return fmt.Errorf("foreign key check: %w", err)
	}
	if len(violations) > 0 {
		return fmt.Errorf("foreign key check: %d violation(s), first in %v", len(violations), violations[0]["table"])
	}
	return nil
}

// Status lists every known migration and whether it has been applied.
func Status(db *gorm.DB) ([]MigrationStatus, error) {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return nil, fmt.Errorf("failed to prepare schema_migration: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		st := MigrationStatus{Version: m.Version, Name: m.Name}
		if row, ok := applied[m.Version]; ok {
			st.Applied = true
			st.AppliedAt = row.AppliedAt
		}
		statuses = append(statuses, st)
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Version < statuses[j].Version })
	return statuses, nil
}

func appliedVersions(db *gorm.DB) (map[string]SchemaMigration, error) {
	var rows []SchemaMigration
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read schema_migration: %w", err)
	}

	applied := make(map[string]SchemaMigration, len(rows))
	for _, row := range rows {
		applied[row.Version] = row
	}
	return applied, nil
}
