package show

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/database/dbtest"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestList(t *testing.T) {
	db := dbtest.New(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA"})
	petals := dbtest.CreateArtist(t, db, models.Artist{Name: "Guns N Petals", ImageLink: "https://example.com/gnp.jpg"})
	sax := dbtest.CreateArtist(t, db, models.Artist{Name: "The Wild Sax Band"})
	dbtest.CreateShow(t, db, sax.ID, hop.ID, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC))
	first := dbtest.CreateShow(t, db, petals.ID, hop.ID, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC))

	items, err := List(db)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.ShowListItem{
		ID:              first.ID,
		VenueID:         hop.ID,
		VenueName:       "The Musical Hop",
		ArtistID:        petals.ID,
		ArtistName:      "Guns N Petals",
		ArtistImageLink: "https://example.com/gnp.jpg",
		StartTime:       "2019-05-21 21:30:00",
	}, items[0])
	assert.Equal(t, "The Wild Sax Band", items[1].ArtistName)
}

func TestCreate_ForeignKeyViolation(t *testing.T) {
	db := dbtest.New(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop"})

	err := Create(db, &models.Show{ArtistID: 999, VenueID: hop.ID, StartTime: time.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
	assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Show{}))
}

func newRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	pages := web.NewPages(web.NewCookieStore())
	r, err := web.NewEngine(pages)
	require.NoError(t, err)
	NewService(db, pages).SetupRoutes(r)
	return r, db
}

func post(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateShow(t *testing.T) {
	r, db := newRouter(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop"})
	petals := dbtest.CreateArtist(t, db, models.Artist{Name: "Guns N Petals"})

	w := post(r, "/shows/create", url.Values{
		"artist_id":  {strconv.Itoa(int(petals.ID))},
		"venue_id":   {strconv.Itoa(int(hop.ID))},
		"start_time": {"2035-04-01 20:00:00"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Show
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.True(t, created.StartTime.Equal(time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(1), dbtest.Count(t, db, &models.Show{}))
}

func TestCreateShow_UnknownArtist(t *testing.T) {
	r, db := newRouter(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop"})

	w := post(r, "/shows/create", url.Values{
		"artist_id":  {"999"},
		"venue_id":   {strconv.Itoa(int(hop.ID))},
		"start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Show could not be listed")
	assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Show{}))
}

func TestCreateShow_UnparsableInput(t *testing.T) {
	r, db := newRouter(t)

	w := post(r, "/shows/create", url.Values{"artist_id": {"x"}, "venue_id": {"1"}, "start_time": {"soon"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Errors, 2)
	assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Show{}))
}

func TestListShows(t *testing.T) {
	r, db := newRouter(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop"})
	petals := dbtest.CreateArtist(t, db, models.Artist{Name: "Guns N Petals"})
	dbtest.CreateShow(t, db, petals.ID, hop.ID, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/shows", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Guns N Petals")
	assert.Contains(t, w.Body.String(), "Sunday April 1, 2035 at 8:00PM")
}
