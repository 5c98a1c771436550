// Package di wires the application together with google/wire.
package di

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"bookshop/application/ports"
	"bookshop/application/services"
	"bookshop/domain/model"
	"bookshop/infrastructure/cache"
	"bookshop/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *bun.DB

	BookRepo   ports.BookRepository
	AuthorRepo ports.AuthorRepository
	ReviewRepo ports.ReviewRepository

	BookCache   *cache.Bounded[int64, *model.Book]
	AuthorCache *cache.Bounded[int64, *model.Author]
	ReviewCache *cache.Bounded[int64, []*model.Review]

	BookService    *services.BookService
	AuthorService  *services.AuthorService
	ReviewService  *services.ReviewService
	LogService     *services.LogService
	LogTaskService *services.LogTaskService
	CounterService *services.CounterService
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	c.LogTaskService.Close()
	if err := c.DB.Close(); err != nil {
		return err
	}
	_ = c.Logger.Sync()
	return nil
}
