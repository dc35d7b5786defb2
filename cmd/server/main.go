package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/logger"
	"github.com/JonasLeetTheWay/fyyur-go/internal/redis"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/artist"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/home"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/show"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/venue"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Flash messages live in Redis when it is enabled, in a cookie otherwise
	var (
		flashes web.FlashStore = web.NewCookieStore()
		pinger  home.Pinger
	)
	if cfg.RedisEnabled {
		rdb := redis.NewClient(cfg)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr()).Msg("Failed to connect to Redis")
		}

		flashes = web.NewSessionStore(rdb)
		pinger = rdb
	}

	pages := web.NewPages(flashes)
	r, err := web.NewEngine(pages)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	// Setup routes
	home.NewService(db, pages, pinger).SetupRoutes(r)
	venue.NewService(db, pages).SetupRoutes(r)
	artist.NewService(db, pages).SetupRoutes(r)
	show.NewService(db, pages).SetupRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("driver", cfg.DBDriver).Msg("Fyyur starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}
