package venue

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	pages *web.Pages
	now   func() time.Time
}

func NewService(db *gorm.DB, pages *web.Pages) *Service {
	return &Service{db: db, pages: pages, now: time.Now}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	venues := r.Group("/venues")
	venues.GET("", s.ListVenues)
	venues.POST("/search", s.SearchVenues)
	venues.GET("/create", s.NewVenueForm)
	venues.POST("/create", s.CreateVenue)
	venues.GET("/:id", s.GetVenue)
	venues.GET("/:id/edit", s.EditVenueForm)
	venues.POST("/:id/edit", s.UpdateVenue)
	venues.POST("/:id/delete", s.DeleteVenue)
	venues.DELETE("/:id", s.DeleteVenue)
}

func (s *Service) ListVenues(c *gin.Context) {
	areas, err := List(s.db.WithContext(c.Request.Context()), s.now())
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.pages.Render(c, http.StatusOK, "venues.html", gin.H{"title": "Venues", "areas": areas})
}

func (s *Service) SearchVenues(c *gin.Context) {
	term := c.PostForm("search_term")
	results, err := Search(s.db.WithContext(c.Request.Context()), term, s.now())
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.pages.Render(c, http.StatusOK, "search_venues.html", gin.H{
		"title":       "Venue search",
		"search_term": term,
		"results":     results,
	})
}

func (s *Service) GetVenue(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		s.pages.NotFound(c)
		return
	}

	detail, err := Detail(s.db.WithContext(c.Request.Context()), id, s.now())
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.pages.Render(c, http.StatusOK, "show_venue.html", gin.H{"title": detail.Name, "venue": detail})
}

func (s *Service) NewVenueForm(c *gin.Context) {
	s.renderForm(c, http.StatusOK, "new_venue.html", 0, forms.VenueForm{}, nil)
}

func (s *Service) CreateVenue(c *gin.Context) {
	form := s.bindForm(c)
	v, err := form.Venue()
	if err != nil {
		s.pages.Flash(c, err.Error())
		s.renderForm(c, http.StatusBadRequest, "new_venue.html", 0, form, err)
		return
	}

	err = database.WithTransaction(c.Request.Context(), s.db, func(tx *gorm.DB) error {
		return Create(tx, &v)
	})
	if err != nil {
		log.Error().Err(err).Str("venue", v.Name).Msg("Failed to create venue")
		s.pages.Flash(c, fmt.Sprintf("An error occurred. Venue %s could not be listed.", v.Name))
		s.renderForm(c, web.ToHTTPStatus(err), "new_venue.html", 0, form, nil)
		return
	}

	log.Info().Uint("venue_id", v.ID).Str("venue", v.Name).Msg("Venue created")
	s.pages.Flash(c, fmt.Sprintf("Venue %s was successfully listed!", v.Name))
	s.pages.Created(c, "/", v)
}

func (s *Service) EditVenueForm(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		s.pages.NotFound(c)
		return
	}

	v, err := Get(s.db.WithContext(c.Request.Context()), id)
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.renderForm(c, http.StatusOK, "edit_venue.html", id, forms.VenueFormFromRecord(v), nil)
}

func (s *Service) UpdateVenue(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		s.pages.NotFound(c)
		return
	}

	form := s.bindForm(c)
	next, err := form.Venue()
	if err != nil {
		s.pages.Flash(c, err.Error())
		s.renderForm(c, http.StatusBadRequest, "edit_venue.html", id, form, err)
		return
	}

	_, err = database.WithTransactionResult(c.Request.Context(), s.db, func(tx *gorm.DB) (models.Venue, error) {
		return Update(tx, id, next)
	})
	if err != nil {
		if web.ToHTTPStatus(err) == http.StatusNotFound {
			s.pages.NotFound(c)
			return
		}
		log.Error().Err(err).Uint("venue_id", id).Msg("Failed to update venue")
		s.pages.Flash(c, fmt.Sprintf("An error occurred. Venue %s could not be updated.", next.Name))
		s.renderForm(c, web.ToHTTPStatus(err), "edit_venue.html", id, form, nil)
		return
	}

	s.pages.Flash(c, fmt.Sprintf("Venue %s was successfully updated!", next.Name))
	s.pages.Redirect(c, fmt.Sprintf("/venues/%d", id))
}

func (s *Service) DeleteVenue(c *gin.Context) {
	id, ok := venueID(c)
	if !ok {
		s.pages.NotFound(c)
		return
	}

	deleted, err := database.WithTransactionResult(c.Request.Context(), s.db, func(tx *gorm.DB) (models.Venue, error) {
		return Delete(tx, id)
	})
	if err != nil {
		if web.ToHTTPStatus(err) == http.StatusNotFound {
			s.pages.NotFound(c)
			return
		}
		log.Error().Err(err).Uint("venue_id", id).Msg("Failed to delete venue")
		s.pages.Flash(c, fmt.Sprintf("An error occurred. Venue %d could not be deleted.", id))
		s.pages.Redirect(c, fmt.Sprintf("/venues/%d", id))
		return
	}

	log.Info().Uint("venue_id", id).Msg("Venue deleted")
	s.pages.Flash(c, fmt.Sprintf("Venue %s was successfully deleted.", deleted.Name))
	s.pages.Redirect(c, "/")
}

func (s *Service) bindForm(c *gin.Context) forms.VenueForm {
	// ParseForm errors leave PostForm empty and surface as required-field errors.
	_ = c.Request.ParseForm()
	return forms.VenueFormFromValues(c.Request.PostForm)
}

func (s *Service) renderForm(c *gin.Context, status int, page string, id uint, form forms.VenueForm, err error) {
	data := gin.H{
		"title":  "Venue",
		"id":     id,
		"form":   form,
		"states": forms.States,
		"genres": forms.Genres,
		"errors": forms.FieldErrors(err),
	}
	s.pages.Render(c, status, page, data)
}

func venueID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
