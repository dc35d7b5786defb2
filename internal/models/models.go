package models

import (
	"time"
)

// Venue is a place that hosts shows.
type Venue struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	Name               string   `gorm:"not null" json:"name"`
	City               string   `gorm:"size:120" json:"city"`
	State              string   `gorm:"size:120" json:"state"`
	Address            string   `gorm:"size:120" json:"address"`
	Phone              string   `gorm:"size:120" json:"phone"`
	Genres             []string `gorm:"serializer:json;type:text" json:"genres"`
	ImageLink          string   `gorm:"size:500" json:"image_link"`
	FacebookLink       string   `gorm:"size:120" json:"facebook_link"`
	Website            string   `gorm:"size:120" json:"website"`
	SeekingTalent      bool     `gorm:"default:false" json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Venue) TableName() string { return "venue" }

// Artist is a performer booked into shows.
type Artist struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	Name               string   `gorm:"not null" json:"name"`
	City               string   `gorm:"size:120" json:"city"`
	State              string   `gorm:"size:120" json:"state"`
	Phone              string   `gorm:"size:120" json:"phone"`
	Genres             []string `gorm:"serializer:json;type:text" json:"genres"`
	ImageLink          string   `gorm:"size:500" json:"image_link"`
	FacebookLink       string   `gorm:"size:120" json:"facebook_link"`
	Website            string   `gorm:"size:120" json:"website"`
	SeekingVenue       bool     `gorm:"default:false" json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Artist) TableName() string { return "artist" }

// Show joins one Artist to one Venue at a point in time. Deleting either
// parent removes the show through the foreign key cascade.
type Show struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StartTime time.Time `gorm:"not null;index:idx_show_start_time" json:"start_time"`
	ArtistID  uint      `gorm:"not null" json:"artist_id"`
	VenueID   uint      `gorm:"not null" json:"venue_id"`

	CreatedAt time.Time `json:"-"`

	// Relationships
	Artist Artist `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE" json:"-"`
	Venue  Venue  `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Show) TableName() string { return "show" }
