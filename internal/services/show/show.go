package show

import (
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type listRow struct {
	ID              uint
	VenueID         uint
	VenueName       string
	ArtistID        uint
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// List returns every show with its venue and artist, earliest first.
func List(tx *gorm.DB) ([]models.ShowListItem, error) {
	var rows []listRow
	err := tx.Model(&models.Show{}).
		Select(`"show".id AS id, venue.id AS venue_id, venue.name AS venue_name, ` +
			`artist.id AS artist_id, artist.name AS artist_name, artist.image_link AS artist_image_link, ` +
			`"show".start_time AS start_time`).
		Joins(`JOIN venue ON venue.id = "show".venue_id`).
		Joins(`JOIN artist ON artist.id = "show".artist_id`).
		Order(`"show".start_time, "show".id`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	items := make([]models.ShowListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, models.ShowListItem{
			ID:              r.ID,
			VenueID:         r.VenueID,
			VenueName:       r.VenueName,
			ArtistID:        r.ArtistID,
			ArtistName:      r.ArtistName,
			ArtistImageLink: r.ArtistImageLink,
			StartTime:       r.StartTime.UTC().Format(models.ListingTimeLayout),
		})
	}
	return items, nil
}

// Create inserts s. A missing artist or venue fails on the foreign key and
// comes back as gorm.ErrForeignKeyViolated.
func Create(tx *gorm.DB, s *models.Show) error {
	s.ID = 0
	s.StartTime = s.StartTime.UTC()
	if err := tx.Omit(clause.Associations).Create(s).Error; err != nil {
		return fmt.Errorf("create show (artist %d, venue %d): %w", s.ArtistID, s.VenueID, err)
	}
	return nil
}
