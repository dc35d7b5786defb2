package forms

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StartTimeLayouts are tried in order when parsing start_time. The first
// matches the listing format, the datetime-local ones match browser input.
var StartTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ShowForm only checks that its inputs parse. Whether the artist and venue
// exist is left to the foreign keys.
type ShowForm struct {
	ArtistID  string `json:"artist_id"`
	VenueID   string `json:"venue_id"`
	StartTime string `json:"start_time"`
}

func ShowFormFromValues(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  field(values, "artist_id"),
		VenueID:   field(values, "venue_id"),
		StartTime: field(values, "start_time"),
	}
}

func (f ShowForm) Show() (models.Show, error) {
	errs := validation.Errors{}

	artistID, err := parseID(f.ArtistID)
	if err != nil {
		errs["artist_id"] = err
	}
	venueID, err := parseID(f.VenueID)
	if err != nil {
		errs["venue_id"] = err
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		errs["start_time"] = err
	}

	if len(errs) > 0 {
		return models.Show{}, &ValidationError{Fields: errs}
	}

	return models.Show{
		ArtistID:  artistID,
		VenueID:   venueID,
		StartTime: start,
	}, nil
}

func parseID(s string) (uint, error) {
	if s == "" {
		return 0, errors.New("cannot be blank")
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("must be a positive integer")
	}
	return uint(id), nil
}

// ParseStartTime accepts any of StartTimeLayouts. Times without a zone are
// taken as UTC.
func ParseStartTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("cannot be blank")
	}
	for _, layout := range StartTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("must be a date and time like 2006-01-02 15:04:05")
}
