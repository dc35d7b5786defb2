package web

import (
	"errors"
	"net/http"

	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const pendingFlashesKey = "fyyur.flashes"

var offered = []string{binding.MIMEHTML, binding.MIMEJSON}

// Pages renders templates or JSON, whichever the client asked for, and owns
// the flash messages shown on them.
type Pages struct {
	flashes FlashStore
}

func NewPages(flashes FlashStore) *Pages {
	return &Pages{flashes: flashes}
}

// Flash queues msg for the page rendered by this request, or for the next
// request if this one redirects.
func (p *Pages) Flash(c *gin.Context, msg string) {
	c.Set(pendingFlashesKey, append(pending(c), msg))
}

// Render shows template name with data. Stored and pending flashes are added
// under "messages".
func (p *Pages) Render(c *gin.Context, status int, name string, data gin.H) {
	stored, err := p.flashes.Load(c)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load flash messages")
	}

	out := gin.H{}
	for k, v := range data {
		out[k] = v
	}
	out["messages"] = append(append([]string{}, stored...), pending(c)...)

	c.Negotiate(status, gin.Negotiate{
		Offered:  offered,
		HTMLName: name,
		Data:     out,
	})
}

// Redirect persists pending flashes and sends a 303 to location.
func (p *Pages) Redirect(c *gin.Context, location string) {
	if err := p.flashes.Save(c, pending(c)); err != nil {
		log.Warn().Err(err).Msg("Failed to save flash messages")
	}
	c.Redirect(http.StatusSeeOther, location)
}

// Created answers a successful create. JSON clients get the record, browsers
// are sent to location.
func (p *Pages) Created(c *gin.Context, location string, record any) {
	if WantsJSON(c) {
		c.JSON(http.StatusCreated, record)
		return
	}
	p.Redirect(c, location)
}

func (p *Pages) NotFound(c *gin.Context) {
	renderError(c, http.StatusNotFound)
}

// Error renders the page matching err. Anything that is not a missing record
// or bad input is logged and shown as a 500.
func (p *Pages) Error(c *gin.Context, err error) {
	status := ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	renderError(c, status)
}

// ToHTTPStatus maps a domain or persistence error to an HTTP status.
func ToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, forms.ErrInvalid),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(offered...) == binding.MIMEJSON
}

func renderError(c *gin.Context, status int) {
	name := "500.html"
	if status == http.StatusNotFound {
		name = "404.html"
	}
	c.Negotiate(status, gin.Negotiate{
		Offered:  offered,
		HTMLName: name,
		Data:     gin.H{"error": http.StatusText(status), "status": status},
	})
}

func pending(c *gin.Context) []string {
	if v, ok := c.Get(pendingFlashesKey); ok {
		if msgs, ok := v.([]string); ok {
			return msgs
		}
	}
	return nil
}
