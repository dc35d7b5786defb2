package forms

import (
	"net/url"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// VenueForm holds the raw fields of the venue create and edit forms.
type VenueForm struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	WebsiteLink        string   `json:"website_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// VenueFormFromValues reads the submitted venue fields.
func VenueFormFromValues(values url.Values) VenueForm {
	return VenueForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Address:            field(values, "address"),
		Phone:              field(values, "phone"),
		Genres:             multi(values, "genres"),
		ImageLink:          field(values, "image_link"),
		FacebookLink:       field(values, "facebook_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingTalent:      checked(values, "seeking_talent"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

// VenueFormFromRecord prefills the edit form with the stored record.
func VenueFormFromRecord(v models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func (f VenueForm) Validate() error {
	return wrap(validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.City, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.State, stateRules...),
		validation.Field(&f.Address, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.Phone, phoneRules...),
		validation.Field(&f.Genres, genreRules...),
		validation.Field(&f.ImageLink, linkRules...),
		validation.Field(&f.FacebookLink, linkRules...),
		validation.Field(&f.WebsiteLink, linkRules...),
	))
}

// Venue validates the form and maps it onto a new record. On failure the
// error is a *ValidationError and the record is the zero value.
func (f VenueForm) Venue() (models.Venue, error) {
	if err := f.Validate(); err != nil {
		return models.Venue{}, err
	}

	return models.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// Selected reports whether genre is one of the form's genres; templates use
// it to mark options.
func (f VenueForm) Selected(genre string) bool {
	return contains(f.Genres, genre)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
