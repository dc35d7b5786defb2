package venue

import (
	"errors"
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no venue has the requested id.
var ErrNotFound = fmt.Errorf("venue: %w", models.ErrNotFound)

// editableColumns are overwritten on every update, zero values included.
var editableColumns = []string{
	"name", "city", "state", "address", "phone", "genres",
	"image_link", "facebook_link", "website",
	"seeking_talent", "seeking_description", "updated_at",
}

type areaRow struct {
	ID               uint
	Name             string
	City             string
	State            string
	NumUpcomingShows int64
}

// List groups every venue by city and state.
func List(tx *gorm.DB, now time.Time) ([]models.Area, error) {
	var rows []areaRow
	err := tx.Model(&models.Venue{}).
		Select(`venue.id AS id, venue.name AS name, venue.city AS city, venue.state AS state, COUNT("show".id) AS num_upcoming_shows`).
		Joins(`LEFT JOIN "show" ON "show".venue_id = venue.id AND "show".start_time > ?`, now.UTC()).
		Group("venue.id, venue.name, venue.city, venue.state").
		Order("venue.state, venue.city, venue.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}

	areas := []models.Area{}
	for _, r := range rows {
		n := len(areas)
		if n == 0 || areas[n-1].City != r.City || areas[n-1].State != r.State {
			areas = append(areas, models.Area{City: r.City, State: r.State})
			n++
		}
		areas[n-1].Venues = append(areas[n-1].Venues, models.Summary{
			ID:               r.ID,
			Name:             r.Name,
			NumUpcomingShows: r.NumUpcomingShows,
		})
	}
	return areas, nil
}

// Recent returns the newest venues first.
func Recent(tx *gorm.DB, limit int) ([]models.Summary, error) {
	var rows []models.Summary
	err := tx.Model(&models.Venue{}).
		Select("id, name").
		Order("id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent venues: %w", err)
	}
	return rows, nil
}

// Search matches term anywhere in the venue name, ignoring case.
func Search(tx *gorm.DB, term string, now time.Time) (models.SearchResponse, error) {
	var rows []models.Summary
	err := tx.Model(&models.Venue{}).
		Select(`venue.id AS id, venue.name AS name, COUNT("show".id) AS num_upcoming_shows`).
		Joins(`LEFT JOIN "show" ON "show".venue_id = venue.id AND "show".start_time > ?`, now.UTC()).
		Scopes(models.NameContains("venue", term)).
		Group("venue.id, venue.name").
		Order("venue.name").
		Scan(&rows).Error
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("search venues for %q: %w", term, err)
	}
	return models.NewSearchResponse(rows), nil
}

// Get returns venue id or ErrNotFound.
func Get(tx *gorm.DB, id uint) (models.Venue, error) {
	var v models.Venue
	if err := tx.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Venue{}, ErrNotFound
		}
		return models.Venue{}, fmt.Errorf("get venue %d: %w", id, err)
	}
	return v, nil
}

// Detail returns the venue with its shows split around now.
func Detail(tx *gorm.DB, id uint, now time.Time) (models.VenueDetail, error) {
	v, err := Get(tx, id)
	if err != nil {
		return models.VenueDetail{}, err
	}

	past, err := shows(tx, id, models.PastShows(now))
	if err != nil {
		return models.VenueDetail{}, err
	}
	upcoming, err := shows(tx, id, models.UpcomingShows(now))
	if err != nil {
		return models.VenueDetail{}, err
	}

	return models.VenueDetail{
		Venue:              v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func shows(tx *gorm.DB, venueID uint, when func(*gorm.DB) *gorm.DB) ([]models.VenueShow, error) {
	var rows []models.ShowRow
	err := tx.Model(&models.Show{}).
		Select(`artist.id AS counterpart_id, artist.name AS counterpart_name, artist.image_link AS counterpart_image_link, "show".start_time AS start_time`).
		Joins(`JOIN artist ON artist.id = "show".artist_id`).
		Where(`"show".venue_id = ?`, venueID).
		Scopes(when).
		Order(`"show".start_time`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("shows for venue %d: %w", venueID, err)
	}

	out := make([]models.VenueShow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.VenueShow())
	}
	return out, nil
}

// Create inserts v and sets its ID.
func Create(tx *gorm.DB, v *models.Venue) error {
	v.ID = 0
	if err := tx.Create(v).Error; err != nil {
		return fmt.Errorf("create venue %q: %w", v.Name, err)
	}
	return nil
}

// Update overwrites every editable field of venue id with next.
func Update(tx *gorm.DB, id uint, next models.Venue) (models.Venue, error) {
	current, err := Get(tx, id)
	if err != nil {
		return models.Venue{}, err
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	if err := tx.Model(&current).Select(editableColumns).Updates(&next).Error; err != nil {
		return models.Venue{}, fmt.Errorf("update venue %d: %w", id, err)
	}
	return next, nil
}

// Delete removes the venue. Its shows go with it through the foreign key.
func Delete(tx *gorm.DB, id uint) (models.Venue, error) {
	v, err := Get(tx, id)
	if err != nil {
		return models.Venue{}, err
	}
	if err := tx.Delete(&models.Venue{}, id).Error; err != nil {
		return models.Venue{}, fmt.Errorf("delete venue %d: %w", id, err)
	}
	return v, nil
}
