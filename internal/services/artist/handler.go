package artist

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
	artists := r.Group("/artists")
	artists.GET("", s.ListArtists)
	artists.POST("/search", s.SearchArtists)
	artists.GET("/create", s.NewArtistForm)
	artists.POST("/create", s.CreateArtist)
	artists.GET("/:id", s.GetArtist)
	artists.GET("/:id/edit", s.EditArtistForm)
	artists.POST("/:id/edit", s.UpdateArtist)
	artists.POST("/:id/delete", s.DeleteArtist)
	artists.DELETE("/:id", s.DeleteArtist)
}

func (s *Service) ListArtists(c *gin.Context) {
	artists, err := List(s.db.WithContext(c.Request.Context()))
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.pages.Render(c, http.StatusOK, "artists.html", gin.H{"title": "Artists", "artists": artists})
}

func (s *Service) SearchArtists(c *gin.Context) {
	term := c.PostForm("search_term")
	results, err := Search(s.db.WithContext(c.Request.Context()), term, s.now())
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.pages.Render(c, http.StatusOK, "search_artists.html", gin.H{
		"title":       "Artist search",
		"search_term": term,
		"results":     results,
	})
}

func (s *Service) GetArtist(c *gin.Context) {
	id, ok := artistID(c)
	if !ok {
		s.pages.NotFound(c)
		return
	}

	detail, err := Detail(s.db.WithContext(c.Request.Context()), id, s.now())
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.pages.Render(c, http.StatusOK, "show_artist.html", gin.H{"title": detail.Name, "artist": detail})
}

func (s *Service) NewArtistForm(c *gin.Context) {
	s.renderForm(c, http.StatusOK, "new_artist.html", 0, forms.ArtistForm{}, nil)
}

func (s *Service) CreateArtist(c *gin.Context) {
	_ = c.Request.ParseForm()
	form := forms.ArtistFormFromValues(c.Request.PostForm)

	a, err := form.Artist()
	if err != nil {
		s.pages.Flash(c, err.Error())
		s.renderForm(c, http.StatusBadRequest, "new_artist.html", 0, form, err)
		return
	}

	if err := database.WithTransaction(c.Request.Context(), s.db, func(tx *gorm.DB) error {
		return Create(tx, &a)
	}); err != nil {
		log.Error().Err(err).Str("artist", a.Name).Msg("Failed to create artist")
		s.pages.Flash(c, fmt.Sprintf("An error occurred. Artist %s could not be listed.", a.Name))
		s.renderForm(c, web.ToHTTPStatus(err), "new_artist.html", 0, form, nil)
		return
	}

	log.Info().Uint("artist_id", a.ID).Str("artist", a.Name).Msg("Artist created")
	s.pages.Flash(c, fmt.Sprintf("Artist %s was successfully listed!", a.Name))
	s.pages.Created(c, "/", a)
}

func (s *Service) EditArtistForm(c *gin.Context) {
	id, ok := artistID(c)
	if !ok {
		s.pages.NotFound(c)
		return
	}

	a, err := Get(s.db.WithContext(c.Request.Context()), id)
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	s.renderForm(c, http.StatusOK, "edit_artist.html", id, forms.ArtistFormFromRecord(a), nil)
}

func (s *Service) UpdateArtist(c *gin.Context) {
	id, ok := artistID(c)
	if !ok {
		s.pages.NotFound(c)
		return
	}

	_ = c.Request.ParseForm()
	form := forms.ArtistFormFromValues(c.Request.PostForm)

	next, err := form.Artist()
	if err != nil {
		s.pages.Flash(c, err.Error())
		s.renderForm(c, http.StatusBadRequest, "edit_artist.html", id, form, err)
		return
	}

	_, err = database.WithTransactionResult(c.Request.Context(), s.db, func(tx *gorm.DB) (models.Artist, error) {
		return Update(tx, id, next)
	})
	switch status := web.ToHTTPStatus(err); {
	case err == nil:
	case status == http.StatusNotFound:
		s.pages.NotFound(c)
		return
	default:
		log.Error().Err(err).Uint("artist_id", id).Msg("Failed to update artist")
		s.pages.Flash(c, fmt.Sprintf("An error occurred. Artist %s could not be updated.", next.Name))
		s.renderForm(c, status, "edit_artist.html", id, form, nil)
		return
	}

	s.pages.Flash(c, fmt.Sprintf("Artist %s was successfully updated!", next.Name))
	s.pages.Redirect(c, fmt.Sprintf("/artists/%d", id))
}

func (s *Service) DeleteArtist(c *gin.Context) {
	id, ok := artistID(c)
	if !ok {
		s.pages.NotFound(c)
		return
	}

	deleted, err := database.WithTransactionResult(c.Request.Context(), s.db, func(tx *gorm.DB) (models.Artist, error) {
		return Delete(tx, id)
	})
	if err != nil {
		if web.ToHTTPStatus(err) == http.StatusNotFound {
			s.pages.NotFound(c)
			return
		}
		log.Error().Err(err).Uint("artist_id", id).Msg("Failed to delete artist")
		s.pages.Flash(c, fmt.Sprintf("An error occurred. Artist %d could not be deleted.", id))
		s.pages.Redirect(c, fmt.Sprintf("/artists/%d", id))
		return
	}

	log.Info().Uint("artist_id", id).Msg("Artist deleted")
	s.pages.Flash(c, fmt.Sprintf("Artist %s was successfully deleted.", deleted.Name))
	s.pages.Redirect(c, "/")
}

func (s *Service) renderForm(c *gin.Context, status int, page string, id uint, form forms.ArtistForm, err error) {
	s.pages.Render(c, status, page, gin.H{
		"title":  "Artist",
		"id":     id,
		"form":   form,
		"states": forms.States,
		"genres": forms.Genres,
		"errors": forms.FieldErrors(err),
	})
}

func artistID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
