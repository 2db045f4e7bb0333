package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslkit/vocadeck/internal/adapter/repository"
	"github.com/eslkit/vocadeck/internal/infrastructure/server"
	"github.com/eslkit/vocadeck/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger *logrus.Logger
	Server *server.Server
	Store  *repository.Store
	Decks  usecase.DeckUsecase
	Lookup usecase.LookupUsecase
}
