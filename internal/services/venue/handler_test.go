package venue

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

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	pages := web.NewPages(web.NewCookieStore())
	r, err := web.NewEngine(pages)
	require.NoError(t, err)

	svc := NewService(db, pages)
	svc.now = func() time.Time { return now }
	svc.SetupRoutes(r)
	return r, db
}

func do(r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func venueValues() url.Values {
	return url.Values{
		"name":         {"The Fillmore"},
		"city":         {"San Francisco"},
		"state":        {"CA"},
		"address":      {"1805 Geary Blvd"},
		"phone":        {"415-346-6000"},
		"genres":       {"Rock n Roll", "Blues"},
		"website_link": {"https://www.thefillmore.com"},
	}
}

func TestGetVenue_NotFound(t *testing.T) {
	r, _ := newTestServer(t)

	for _, path := range []string{"/venues/999999", "/venues/abc", "/venues/999999/edit"} {
		w := do(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestGetVenue_HTML(t *testing.T) {
	r, db := newTestServer(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz", "Reggae"}})

	req := httptest.NewRequest(http.MethodGet, "/venues/"+itoa(hop.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "The Musical Hop")
	assert.Contains(t, w.Body.String(), "Jazz, Reggae")
}

func TestGetVenue_JSON(t *testing.T) {
	r, db := newTestServer(t)
	hop, _, _, artist := seedVenues(t, db)
	dbtest.CreateShow(t, db, artist.ID, hop.ID, now.Add(time.Hour))

	w := do(r, http.MethodGet, "/venues/"+itoa(hop.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Venue struct {
			Name               string `json:"name"`
			UpcomingShowsCount int    `json:"upcoming_shows_count"`
			UpcomingShows      []struct {
				ArtistName string `json:"artist_name"`
			} `json:"upcoming_shows"`
		} `json:"venue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "The Musical Hop", body.Venue.Name)
	assert.Equal(t, 1, body.Venue.UpcomingShowsCount)
	require.Len(t, body.Venue.UpcomingShows, 1)
	assert.Equal(t, "Guns N Petals", body.Venue.UpcomingShows[0].ArtistName)
}

func TestListVenues(t *testing.T) {
	r, db := newTestServer(t)
	seedVenues(t, db)

	w := do(r, http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Areas []models.Area `json:"areas"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Areas, 2)
}

func TestSearchVenues(t *testing.T) {
	r, db := newTestServer(t)
	seedVenues(t, db)

	w := do(r, http.MethodPost, "/venues/search", url.Values{"search_term": {"Music"}})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results models.SearchResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Results.Count)
}

func TestCreateVenue(t *testing.T) {
	r, db := newTestServer(t)

	w := do(r, http.MethodPost, "/venues/create", venueValues())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Venue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, []string{"Rock n Roll", "Blues"}, created.Genres)
	assert.Equal(t, int64(1), dbtest.Count(t, db, &models.Venue{}))
}

func TestCreateVenue_HTMLRedirectsHomeWithFlash(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/venues/create", strings.NewReader(venueValues().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestCreateVenue_InvalidFormPersistsNothing(t *testing.T) {
	r, db := newTestServer(t)
	values := venueValues()
	values.Del("name")
	values.Set("phone", "nope")

	w := do(r, http.MethodPost, "/venues/create", values)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Messages []string `json:"messages"`
		Errors   []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Messages, 1)
	assert.Contains(t, body.Messages[0], "Errors: ")
	assert.Equal(t, []string{"name cannot be blank", "phone must look like 123-456-7890"}, body.Errors)
	assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Venue{}))
}

func TestEditVenueForm_PrefillsFromRecord(t *testing.T) {
	r, db := newTestServer(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street", Genres: []string{"Jazz"}, Website: "https://www.themusicalhop.com"})

	w := do(r, http.MethodGet, "/venues/"+itoa(hop.ID)+"/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Form struct {
			Name        string   `json:"name"`
			Genres      []string `json:"genres"`
			WebsiteLink string   `json:"website_link"`
		} `json:"form"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "The Musical Hop", body.Form.Name)
	assert.Equal(t, []string{"Jazz"}, body.Form.Genres)
	assert.Equal(t, "https://www.themusicalhop.com", body.Form.WebsiteLink)
}

func TestUpdateVenue(t *testing.T) {
	r, db := newTestServer(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz"}, SeekingTalent: true})

	w := do(r, http.MethodPost, "/venues/"+itoa(hop.ID)+"/edit", venueValues())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/venues/"+itoa(hop.ID), w.Header().Get("Location"))

	got, err := Get(db, hop.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Fillmore", got.Name)
	assert.Equal(t, "https://www.thefillmore.com", got.Website)
	assert.False(t, got.SeekingTalent)
}

func TestUpdateVenue_Missing(t *testing.T) {
	r, db := newTestServer(t)

	w := do(r, http.MethodPost, "/venues/999999/edit", venueValues())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Venue{}))
}

func TestDeleteVenue(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			r, db := newTestServer(t)
			hop, _, _, artist := seedVenues(t, db)
			dbtest.CreateShow(t, db, artist.ID, hop.ID, now.Add(time.Hour))

			path := "/venues/" + itoa(hop.ID)
			if method == http.MethodPost {
				path += "/delete"
			}
			w := do(r, method, path, nil)
			require.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))

			assert.Equal(t, int64(2), dbtest.Count(t, db, &models.Venue{}))
			assert.Equal(t, int64(0), dbtest.Count(t, db, &models.Show{}))

			w = do(r, http.MethodGet, "/venues/"+itoa(hop.ID), nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestDeleteVenue_NoGetRoute(t *testing.T) {
	r, db := newTestServer(t)
	hop := dbtest.CreateVenue(t, db, models.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA"})

	w := do(r, http.MethodGet, "/venues/"+itoa(hop.ID)+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(1), dbtest.Count(t, db, &models.Venue{}))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
