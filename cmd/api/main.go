package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vibecheck/internal/auth"
	"vibecheck/internal/config"
	"vibecheck/internal/httpserver"
	"vibecheck/internal/logger"
	"vibecheck/internal/models"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.New(cfg.LogLevel, cfg.Development())
	defer lg.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	// geometry columns need the extension before AutoMigrate runs
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
		lg.Fatalw("postgis extension failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Report{}, &models.Vibe{},
		&models.VibeMedia{}, &models.VibeMetrics{}, &models.Follower{}, &models.Session{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	router := httpserver.NewRouter(db, lg, cfg, tokens)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	lg.Infow("listening", "port", cfg.HTTPPort, "env", cfg.AppEnv)
	if err := srv.ListenAndServe(); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}
