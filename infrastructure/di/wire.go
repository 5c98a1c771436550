//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"bookshop/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDB,
	ProvideBookRepository,
	ProvideAuthorRepository,
	ProvideReviewRepository,
	ProvideBookCache,
	ProvideAuthorCache,
	ProvideReviewCache,
	ProvideBookService,
	ProvideAuthorService,
	ProvideReviewService,
	ProvideLogService,
	ProvideLogTaskService,
	ProvideCounterService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
