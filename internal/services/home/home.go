package home

import (
	"context"
	"net/http"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/services/artist"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/venue"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const recentLimit = 10

// Pinger is satisfied by the Redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Service struct {
	db    *gorm.DB
	pages *web.Pages
	redis Pinger
}

// NewService builds the home page and health check. redis may be nil when
// flash messages are kept in cookies.
func NewService(db *gorm.DB, pages *web.Pages, redis Pinger) *Service {
	return &Service{db: db, pages: pages, redis: redis}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	r.GET("/", s.Index)
	r.GET("/health", s.HealthCheck)
}

func (s *Service) Index(c *gin.Context) {
	tx := s.db.WithContext(c.Request.Context())

	venues, err := venue.Recent(tx, recentLimit)
	if err != nil {
		s.pages.Error(c, err)
		return
	}
	artists, err := artist.Recent(tx, recentLimit)
	if err != nil {
		s.pages.Error(c, err)
		return
	}

	s.pages.Render(c, http.StatusOK, "home.html", gin.H{
		"venues":  venues,
		"artists": artists,
	})
}

func (s *Service) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{
		"status":   "healthy",
		"service":  "fyyur",
		"database": "ok",
		"redis":    "disabled",
	}

	if err := s.pingDB(ctx); err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = err.Error()
	}

	if s.redis != nil {
		body["redis"] = "ok"
		if err := s.redis.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Redis health check failed")
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["redis"] = err.Error()
		}
	}

	c.JSON(status, body)
}

func (s *Service) pingDB(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
