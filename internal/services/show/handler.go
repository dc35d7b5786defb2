package show

import (
	"net/http"

	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	pages *web.Pages
}

func NewService(db *gorm.DB, pages *web.Pages) *Service {
	return &Service{db: db, pages: pages}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	r.GET("/shows", s.ListShows)
	r.GET("/shows/create", s.NewShowForm)
	r.POST("/shows/create", s.CreateShow)
}

func (s *Service) ListShows(c *gin.Context) {
	shows, err := List(s.db.WithContext(c.Request.Context()))
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.pages.Render(c, http.StatusOK, "shows.html", gin.H{"title": "Shows", "shows": shows})
}

func (s *Service) NewShowForm(c *gin.Context) {
	s.pages.Render(c, http.StatusOK, "new_show.html", gin.H{"title": "New show", "form": forms.ShowForm{}})
}

func (s *Service) CreateShow(c *gin.Context) {
	_ = c.Request.ParseForm()
	form := forms.ShowFormFromValues(c.Request.PostForm)

	show, err := form.Show()
	if err != nil {
		s.pages.Flash(c, err.Error())
		s.pages.Render(c, http.StatusBadRequest, "new_show.html", gin.H{
			"title":  "New show",
			"form":   form,
			"errors": forms.FieldErrors(err),
		})
		return
	}

	err = database.WithTransaction(c.Request.Context(), s.db, func(tx *gorm.DB) error {
		return Create(tx, &show)
	})
	if err != nil {
		log.Error().Err(err).
			Uint("artist_id", show.ArtistID).
			Uint("venue_id", show.VenueID).
			Msg("Failed to create show")
		s.pages.Flash(c, "An error occurred. Show could not be listed.")
		s.pages.Render(c, web.ToHTTPStatus(err), "new_show.html", gin.H{"title": "New show", "form": form})
		return
	}

	log.Info().Uint("show_id", show.ID).Msg("Show created")
	s.pages.Flash(c, "Show was successfully listed!")
	s.pages.Created(c, "/", show)
}
