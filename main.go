package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kommundle/go-server/internal/entity"
	"github.com/kommundle/go-server/internal/httpserver"
	"github.com/kommundle/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// Empty target pool is a configuration bug; refuse to start.
	if err := entity.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load municipality catalog")
	}
	total, withImage := entity.Stats()
	log.Info().Int("total", total).Int("withImage", withImage).Msg("catalog loaded")

	db, err := openDB(getEnv("DB_PATH", "./data/kommundle.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	st := store.NewSQLiteStore(db)
	srv := httpserver.New(st, db, httpserver.ConfigFromEnv())
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting kommundle server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
