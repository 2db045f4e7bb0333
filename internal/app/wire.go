//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslkit/vocadeck/internal/adapter/httpapi"
	"github.com/eslkit/vocadeck/internal/adapter/lookup"
	"github.com/eslkit/vocadeck/internal/adapter/repository"
	"github.com/eslkit/vocadeck/internal/catalog"
	"github.com/eslkit/vocadeck/internal/infrastructure/config"
	"github.com/eslkit/vocadeck/internal/infrastructure/database"
	"github.com/eslkit/vocadeck/internal/infrastructure/server"
	"github.com/eslkit/vocadeck/internal/session"
	"github.com/eslkit/vocadeck/internal/usecase"
	repoiface "github.com/eslkit/vocadeck/internal/repository"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
	provideStore,
	wire.Bind(new(repoiface.WordStore), new(*repository.Store)),
	wire.Bind(new(repoiface.DeckStore), new(*repository.Store)),
)

var catalogSet = wire.NewSet(
	catalog.Load,
)

var usecaseSet = wire.NewSet(
	usecase.NewDeckUsecase,
	usecase.NewWordUsecase,
	usecase.NewLookupUsecase,
)

var adapterSet = wire.NewSet(
	provideGenerator,
	wire.Bind(new(usecase.WordGenerator), new(*lookup.Client)),
	provideNarrator,
	session.NewManager,
	httpapi.NewHandler,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		catalogSet,
		usecaseSet,
		adapterSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server", "Store", "Decks", "Lookup"),
	)
	return nil, nil, nil
}
