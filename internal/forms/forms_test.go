package forms

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVenueValues() url.Values {
	return url.Values{
		"name":                {"The Musical Hop"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae"},
		"image_link":          {"https://example.com/hop.jpg"},
		"facebook_link":       {"https://www.facebook.com/TheMusicalHop"},
		"website_link":        {"https://www.themusicalhop.com"},
		"seeking_talent":      {"y"},
		"seeking_description": {"Looking for local acts"},
	}
}

func validArtistValues() url.Values {
	return url.Values{
		"name":          {"Guns N Petals"},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"phone":         {"326-123-5000"},
		"genres":        {"Rock n Roll"},
		"facebook_link": {"https://www.facebook.com/GunsNPetals"},
		"seeking_venue": {"on"},
	}
}

func TestVenueForm_Valid(t *testing.T) {
	v, err := VenueFormFromValues(validVenueValues()).Venue()
	require.NoError(t, err)

	assert.Equal(t, "The Musical Hop", v.Name)
	assert.Equal(t, []string{"Jazz", "Reggae"}, v.Genres)
	assert.Equal(t, "https://www.themusicalhop.com", v.Website)
	assert.True(t, v.SeekingTalent)
	assert.Zero(t, v.ID)
}

func TestVenueForm_OptionalFieldsMayBeEmpty(t *testing.T) {
	values := validVenueValues()
	for _, key := range []string{"phone", "image_link", "facebook_link", "website_link", "seeking_talent", "seeking_description"} {
		values.Del(key)
	}

	v, err := VenueFormFromValues(values).Venue()
	require.NoError(t, err)
	assert.False(t, v.SeekingTalent)
}

func TestVenueForm_CollectsEveryFieldError(t *testing.T) {
	values := validVenueValues()
	values.Set("name", "   ")
	values.Set("state", "ZZ")
	values.Set("facebook_link", "not a url")
	values["genres"] = []string{"Jazz", "Polka"}

	v, err := VenueFormFromValues(values).Venue()
	require.Error(t, err)
	assert.Equal(t, models.Venue{}, v)
	assert.True(t, errors.Is(err, ErrInvalid))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "state")
	assert.Contains(t, verr.Fields, "facebook_link")
	assert.Contains(t, verr.Fields, "genres")

	msg := err.Error()
	assert.Contains(t, msg, "Errors: ")
	assert.Contains(t, msg, "name cannot be blank")
	assert.Contains(t, msg, "state is not a valid state")
}

func TestVenueForm_MissingGenres(t *testing.T) {
	values := validVenueValues()
	values.Del("genres")

	_, err := VenueFormFromValues(values).Venue()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "genres")
}

func TestVenueForm_BadPhone(t *testing.T) {
	values := validVenueValues()
	values.Set("phone", "12345")

	_, err := VenueFormFromValues(values).Venue()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"phone must look like 123-456-7890"}, verr.FieldErrors())
}

func TestVenueFormFromRecord_RoundTrip(t *testing.T) {
	record := models.Venue{
		Name:          "Park Square Live Music & Coffee",
		City:          "San Francisco",
		State:         "CA",
		Address:       "34 Whiskey Moore Ave",
		Genres:        []string{"Jazz", "Folk"},
		Website:       "https://www.parksquarelivemusicandcoffee.com",
		SeekingTalent: true,
	}

	form := VenueFormFromRecord(record)
	assert.True(t, form.Selected("Folk"))
	assert.False(t, form.Selected("Pop"))

	back, err := form.Venue()
	require.NoError(t, err)
	assert.Equal(t, record, back)
}

func TestArtistForm_Valid(t *testing.T) {
	a, err := ArtistFormFromValues(validArtistValues()).Artist()
	require.NoError(t, err)

	assert.Equal(t, "Guns N Petals", a.Name)
	assert.Equal(t, []string{"Rock n Roll"}, a.Genres)
	assert.True(t, a.SeekingVenue)
}

func TestArtistForm_Invalid(t *testing.T) {
	values := validArtistValues()
	values.Del("name")
	values.Del("city")

	_, err := ArtistFormFromValues(values).Artist()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"city cannot be blank", "name cannot be blank"}, verr.FieldErrors())
}

func TestShowForm(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		wantStart time.Time
		wantErrs  []string
	}{
		{
			name:      "listing layout",
			values:    url.Values{"artist_id": {"1"}, "venue_id": {"2"}, "start_time": {"2035-04-01 20:00:00"}},
			wantStart: time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC),
		},
		{
			name:      "datetime-local layout",
			values:    url.Values{"artist_id": {"1"}, "venue_id": {"2"}, "start_time": {"2035-04-01T20:00"}},
			wantStart: time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC),
		},
		{
			name:      "rfc3339 with offset is normalized to UTC",
			values:    url.Values{"artist_id": {"1"}, "venue_id": {"2"}, "start_time": {"2035-04-01T20:00:00+02:00"}},
			wantStart: time.Date(2035, 4, 1, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "everything missing",
			values:   url.Values{},
			wantErrs: []string{"artist_id cannot be blank", "start_time cannot be blank", "venue_id cannot be blank"},
		},
		{
			name:     "non numeric ids",
			values:   url.Values{"artist_id": {"abc"}, "venue_id": {"0"}, "start_time": {"tomorrow"}},
			wantErrs: []string{"artist_id must be a positive integer", "start_time must be a date and time like 2006-01-02 15:04:05", "venue_id must be a positive integer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			show, err := ShowFormFromValues(tt.values).Show()
			if tt.wantErrs != nil {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
				assert.Equal(t, tt.wantErrs, verr.FieldErrors())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, uint(1), show.ArtistID)
			assert.Equal(t, uint(2), show.VenueID)
			assert.True(t, tt.wantStart.Equal(show.StartTime), "start = %v, want %v", show.StartTime, tt.wantStart)
		})
	}
}
