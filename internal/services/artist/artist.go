package artist

import (
	"errors"
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no artist has the requested id.
var ErrNotFound = fmt.Errorf("artist: %w", models.ErrNotFound)

var editableColumns = []string{
	"name", "city", "state", "phone", "genres",
	"image_link", "facebook_link", "website",
	"seeking_venue", "seeking_description", "updated_at",
}

// List returns every artist ordered by id.
func List(tx *gorm.DB) ([]models.ArtistListItem, error) {
	items := []models.ArtistListItem{}
	if err := tx.Model(&models.Artist{}).Select("id, name").Order("id").Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return items, nil
}

// Recent returns the newest artists first.
func Recent(tx *gorm.DB, limit int) ([]models.Summary, error) {
	var rows []models.Summary
	if err := tx.Model(&models.Artist{}).Select("id, name").Order("id DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("recent artists: %w", err)
	}
	return rows, nil
}

// Search matches term anywhere in the artist name, ignoring case. Upcoming
// shows are counted per artist.
func Search(tx *gorm.DB, term string, now time.Time) (models.SearchResponse, error) {
	var rows []models.Summary
	err := tx.Model(&models.Artist{}).
		Select(`artist.id AS id, artist.name AS name, COUNT("show".id) AS num_upcoming_shows`).
		Joins(`LEFT JOIN "show" ON "show".artist_id = artist.id AND "show".start_time > ?`, now.UTC()).
		Scopes(models.NameContains("artist", term)).
		Group("artist.id, artist.name").
		Order("artist.name").
		Scan(&rows).Error
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("search artists for %q: %w", term, err)
	}
	return models.NewSearchResponse(rows), nil
}

// Get returns artist id or ErrNotFound.
func Get(tx *gorm.DB, id uint) (models.Artist, error) {
	var a models.Artist
	err := tx.First(&a, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.Artist{}, ErrNotFound
	case err != nil:
		return models.Artist{}, fmt.Errorf("get artist %d: %w", id, err)
	}
	return a, nil
}

// Detail returns the artist with its shows split around now.
func Detail(tx *gorm.DB, id uint, now time.Time) (models.ArtistDetail, error) {
	a, err := Get(tx, id)
	if err != nil {
		return models.ArtistDetail{}, err
	}

	detail := models.ArtistDetail{Artist: a}
	if detail.PastShows, err = shows(tx, id, models.PastShows(now)); err != nil {
		return models.ArtistDetail{}, err
	}
	if detail.UpcomingShows, err = shows(tx, id, models.UpcomingShows(now)); err != nil {
		return models.ArtistDetail{}, err
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)

	return detail, nil
}

func shows(tx *gorm.DB, artistID uint, when func(*gorm.DB) *gorm.DB) ([]models.ArtistShow, error) {
	var rows []models.ShowRow
	err := tx.Model(&models.Show{}).
		Select(`venue.id AS counterpart_id, venue.name AS counterpart_name, venue.image_link AS counterpart_image_link, "show".start_time AS start_time`).
		Joins(`JOIN venue ON venue.id = "show".venue_id`).
		Where(`"show".artist_id = ?`, artistID).
		Scopes(when).
		Order(`"show".start_time`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("shows for artist %d: %w", artistID, err)
	}

	out := make([]models.ArtistShow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ArtistShow())
	}
	return out, nil
}

// Create inserts a and sets its ID.
func Create(tx *gorm.DB, a *models.Artist) error {
	a.ID = 0
	if err := tx.Create(a).Error; err != nil {
		return fmt.Errorf("create artist %q: %w", a.Name, err)
	}
	return nil
}

// Update overwrites every editable field of artist id with next.
func Update(tx *gorm.DB, id uint, next models.Artist) (models.Artist, error) {
	current, err := Get(tx, id)
	if err != nil {
		return models.Artist{}, err
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	if err := tx.Model(&current).Select(editableColumns).Updates(&next).Error; err != nil {
		return models.Artist{}, fmt.Errorf("update artist %d: %w", id, err)
	}
	return next, nil
}

// Delete removes the artist and, through the foreign key, its shows.
func Delete(tx *gorm.DB, id uint) (models.Artist, error) {
	a, err := Get(tx, id)
	if err != nil {
		return models.Artist{}, err
	}
	if err := tx.Delete(&models.Artist{}, id).Error; err != nil {
		return models.Artist{}, fmt.Errorf("delete artist %d: %w", id, err)
	}
	return a, nil
}
