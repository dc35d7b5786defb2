package models

import "time"

const (
	// ShowTimeLayout renders start times on detail pages (MM/DD/YYYY, HH:MM).
	ShowTimeLayout = "01/02/2006, 15:04"
	// ListingTimeLayout renders start times on the show listing.
	ListingTimeLayout = "2006-01-02 15:04:05"
)

// Summary is one row of a search result or of the venue listing.
type Summary struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int64  `json:"num_upcoming_shows"`
}

type SearchResponse struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}

func NewSearchResponse(rows []Summary) SearchResponse {
	if rows == nil {
		rows = []Summary{}
	}
	return SearchResponse{Count: len(rows), Data: rows}
}

// Area groups the venues sharing a city and state.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

type ArtistListItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ShowListItem struct {
	ID              uint   `json:"id"`
	VenueID         uint   `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint   `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueShow is a show seen from its venue: the counterpart is the artist.
type VenueShow struct {
	ArtistID        uint   `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// ArtistShow is a show seen from its artist: the counterpart is the venue.
type ArtistShow struct {
	VenueID        uint   `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

type VenueDetail struct {
	Venue
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	Artist
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ShowRow is the raw join row behind VenueShow and ArtistShow.
type ShowRow struct {
	CounterpartID        uint
	CounterpartName      string
	CounterpartImageLink string
	StartTime            time.Time
}

func (r ShowRow) VenueShow() VenueShow {
	return VenueShow{
		ArtistID:        r.CounterpartID,
		ArtistName:      r.CounterpartName,
		ArtistImageLink: r.CounterpartImageLink,
		StartTime:       r.StartTime.UTC().Format(ShowTimeLayout),
	}
}

func (r ShowRow) ArtistShow() ArtistShow {
	return ArtistShow{
		VenueID:        r.CounterpartID,
		VenueName:      r.CounterpartName,
		VenueImageLink: r.CounterpartImageLink,
		StartTime:      r.StartTime.UTC().Format(ShowTimeLayout),
	}
}
