package app

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/eslkit/vocadeck/internal/adapter/lookup"
	"github.com/eslkit/vocadeck/internal/adapter/repository"
	"github.com/eslkit/vocadeck/internal/adapter/speech"
	"github.com/eslkit/vocadeck/internal/infrastructure/config"
)

func provideStore(cfg *config.Config, db *sql.DB, logger *logrus.Logger) *repository.Store {
	return repository.NewStore(db, cfg.Database.Driver, logger)
}

func provideGenerator(cfg *config.Config, logger *logrus.Logger) *lookup.Client {
	return lookup.NewClient(
		cfg.Lookup.Endpoint,
		cfg.Lookup.Token,
		cfg.Lookup.Model,
		cfg.Lookup.RequestsPerMinute,
		logger,
	)
}

// provideNarrator returns the HTTP narrator, or a no-op one when no speech
// endpoint is configured.
func provideNarrator(cfg *config.Config, logger *logrus.Logger) speech.Narrator {
	if cfg.Speech.Endpoint == "" {
		return speech.Noop{}
	}
	return speech.NewClient(cfg.Speech.Endpoint, cfg.Speech.Voice, logger)
}
