// main.go
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/noteful/noteful-server/auth"
	"github.com/noteful/noteful-server/config"
	httphandlers "github.com/noteful/noteful-server/http"
	"github.com/noteful/noteful-server/store"
	"github.com/noteful/noteful-server/store/memory"
	"github.com/noteful/noteful-server/store/postgres"
	"github.com/noteful/noteful-server/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("config")
	}

	log := newLogger(cfg.LogLevel)

	var st store.Store
	switch cfg.StoreDriver {
	case "memory":
		st = memory.New()
		log.Warn().Msg("using in-memory store, data will not survive a restart")
	default:
		st, err = postgres.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
	}
	defer st.Close()

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	hub := ws.NewHub(log)
	server := httphandlers.NewServer(st, issuer, hub, log)

	log.Info().Str("addr", cfg.Addr).Str("store", cfg.StoreDriver).Msg("server starting")
	if err := server.App().Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	log := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	if os.Getenv("LOG_PRETTY") != "" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log
}
