package database

import (
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SeedData loads the sample venues, artists and shows. It does nothing when
// any venue already exists.
func SeedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Venue{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count venues: %w", err)
	}
	if count > 0 {
		log.Info().Msg("Data already seeded, skipping...")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		venues := []models.Venue{
			{
				Name:               "The Musical Hop",
				Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
				Address:            "1015 Folsom Street",
				City:               "San Francisco",
				State:              "CA",
				Phone:              "123-123-1234",
				Website:            "https://www.themusicalhop.com",
				FacebookLink:       "https://www.facebook.com/TheMusicalHop",
				SeekingTalent:      true,
				SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
				ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?ixlib=rb-1.2.1&auto=format&fit=crop&w=400&q=60",
			},
			{
				Name:         "The Dueling Pianos Bar",
				Genres:       []string{"Classical", "R&B", "Hip-Hop"},
				Address:      "335 Delancey Street",
				City:         "New York",
				State:        "NY",
				Phone:        "914-003-1132",
				Website:      "https://www.theduelingpianos.com",
				FacebookLink: "https://www.facebook.com/theduelingpianos",
				ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?ixlib=rb-1.2.1&auto=format&fit=crop&w=750&q=80",
			},
			{
				Name:      "Park Square Live Music & Coffee",
				Genres:    []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
				Address:   "34 Whiskey Moore Ave",
				City:      "San Francisco",
				State:     "CA",
				Phone:     "415-000-1234",
				Website:   "https://www.parksquarelivemusicandcoffee.com",
				ImageLink: "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?ixlib=rb-1.2.1&auto=format&fit=crop&w=747&q=80",
			},
		}
		if err := tx.Create(&venues).Error; err != nil {
			return fmt.Errorf("failed to create venues: %w", err)
		}

		artists := []models.Artist{
			{
				Name:               "Guns N Petals",
				Genres:             []string{"Rock n Roll"},
				City:               "San Francisco",
				State:              "CA",
				Phone:              "326-123-5000",
				Website:            "https://www.gunsnpetalsband.com",
				FacebookLink:       "https://www.facebook.com/GunsNPetals",
				SeekingVenue:       true,
				SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
				ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?ixlib=rb-1.2.1&auto=format&fit=crop&w=300&q=80",
			},
			{
				Name:         "Matt Quevedo",
				Genres:       []string{"Jazz"},
				City:         "New York",
				State:        "NY",
				Phone:        "300-400-5000",
				FacebookLink: "https://www.facebook.com/mattquevedo923251523",
				ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?ixlib=rb-1.2.1&auto=format&fit=crop&w=334&q=80",
			},
			{
				Name:      "The Wild Sax Band",
				Genres:    []string{"Jazz", "Classical"},
				City:      "San Francisco",
				State:     "CA",
				Phone:     "432-325-5432",
				ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?ixlib=rb-1.2.1&auto=format&fit=crop&w=794&q=80",
			},
		}
		if err := tx.Create(&artists).Error; err != nil {
			return fmt.Errorf("failed to create artists: %w", err)
		}

		shows := []models.Show{
			{VenueID: venues[0].ID, ArtistID: artists[0].ID, StartTime: parseDate("2019-05-21T21:30:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[1].ID, StartTime: parseDate("2019-06-15T23:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-01T20:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-08T20:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-15T20:00:00Z")},
		}
		if err := tx.Omit("Artist", "Venue").Create(&shows).Error; err != nil {
			return fmt.Errorf("failed to create shows: %w", err)
		}

		log.Info().
			Int("venues", len(venues)).
			Int("artists", len(artists)).
			Int("shows", len(shows)).
			Msg("Sample data seeded successfully")
		return nil
	})
}

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse(time.RFC3339, dateStr)
	return t
}
