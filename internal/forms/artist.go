package forms

import (
	"net/url"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ArtistForm holds the raw fields of the artist create and edit forms.
type ArtistForm struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	WebsiteLink        string   `json:"website_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

// ArtistFormFromValues reads the submitted artist fields.
func ArtistFormFromValues(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Phone:              field(values, "phone"),
		Genres:             multi(values, "genres"),
		ImageLink:          field(values, "image_link"),
		FacebookLink:       field(values, "facebook_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingVenue:       checked(values, "seeking_venue"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

// ArtistFormFromRecord prefills the edit form with the stored record.
func ArtistFormFromRecord(a models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (f ArtistForm) Validate() error {
	return wrap(validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.City, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.State, stateRules...),
		validation.Field(&f.Phone, phoneRules...),
		validation.Field(&f.Genres, genreRules...),
		validation.Field(&f.ImageLink, linkRules...),
		validation.Field(&f.FacebookLink, linkRules...),
		validation.Field(&f.WebsiteLink, linkRules...),
	))
}

// Artist validates the form and maps it onto a new record. On failure the
// error is a *ValidationError and the record is the zero value.
func (f ArtistForm) Artist() (models.Artist, error) {
	if err := f.Validate(); err != nil {
		return models.Artist{}, err
	}

	return models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// Selected reports whether genre is one of the form's genres.
func (f ArtistForm) Selected(genre string) bool {
	return contains(f.Genres, genre)
}
