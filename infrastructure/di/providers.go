package di

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bookshop/application/ports"
	"bookshop/application/services"
	"bookshop/domain/model"
	"bookshop/infrastructure/cache"
	"bookshop/infrastructure/config"
	bunstore "bookshop/infrastructure/persistence/bun"

	"github.com/uptrace/bun"
)

// logTimeLayout matches services.LogDateLayout so that log lines can be
// sliced by their date prefix.
const logTimeLayout = "02-01-2006 15:04:05.000"

// ProvideLogger creates a logger writing to stdout and the log file.
// The file copy is the source the log-excerpt endpoints slice from, so the
// timestamp must lead every line.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(logTimeLayout)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	logFile, err := os.OpenFile(cfg.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
		zapcore.NewCore(encoder, zapcore.AddSync(logFile), level),
	)
	return zap.New(core), nil
}

// ProvideDB opens the configured database
func ProvideDB(cfg *config.Config) (*bun.DB, error) {
	return bunstore.NewDB(cfg)
}

// ProvideBookRepository creates a book repository
func ProvideBookRepository(db *bun.DB) ports.BookRepository {
	return bunstore.NewBookRepository(db)
}

// ProvideAuthorRepository creates an author repository
func ProvideAuthorRepository(db *bun.DB) ports.AuthorRepository {
	return bunstore.NewAuthorRepository(db)
}

// ProvideReviewRepository creates a review repository
func ProvideReviewRepository(db *bun.DB) ports.ReviewRepository {
	return bunstore.NewReviewRepository(db)
}

// ProvideBookCache creates the bounded cache of books by id
func ProvideBookCache(cfg *config.Config) *cache.Bounded[int64, *model.Book] {
	return cache.NewBounded[int64, *model.Book](cfg.BookCacheSize)
}

// ProvideAuthorCache creates the bounded cache of authors by id
func ProvideAuthorCache(cfg *config.Config) *cache.Bounded[int64, *model.Author] {
	return cache.NewBounded[int64, *model.Author](cfg.AuthorCacheSize)
}

// ProvideReviewCache creates the bounded cache of review lists by book id
func ProvideReviewCache(cfg *config.Config) *cache.Bounded[int64, []*model.Review] {
	return cache.NewBounded[int64, []*model.Review](cfg.ReviewCacheSize)
}

// ProvideBookService creates the book service
func ProvideBookService(
	books ports.BookRepository,
	authors ports.AuthorRepository,
	bookCache *cache.Bounded[int64, *model.Book],
	authorCache *cache.Bounded[int64, *model.Author],
	reviewCache *cache.Bounded[int64, []*model.Review],
	logger *zap.Logger,
) *services.BookService {
	return services.NewBookService(books, authors, bookCache, authorCache, reviewCache, logger)
}

// ProvideAuthorService creates the author service
func ProvideAuthorService(
	authors ports.AuthorRepository,
	books ports.BookRepository,
	bookSvc *services.BookService,
	authorCache *cache.Bounded[int64, *model.Author],
	bookCache *cache.Bounded[int64, *model.Book],
	logger *zap.Logger,
) *services.AuthorService {
	return services.NewAuthorService(authors, books, bookSvc, authorCache, bookCache, logger)
}

// ProvideReviewService creates the review service
func ProvideReviewService(
	reviews ports.ReviewRepository,
	books ports.BookRepository,
	reviewCache *cache.Bounded[int64, []*model.Review],
	bookCache *cache.Bounded[int64, *model.Book],
	logger *zap.Logger,
) *services.ReviewService {
	return services.NewReviewService(reviews, books, reviewCache, bookCache, logger)
}

// ProvideLogService creates the log slicing service
func ProvideLogService(cfg *config.Config, logger *zap.Logger) *services.LogService {
	return services.NewLogService(cfg.LogFilePath, logger)
}

// ProvideLogTaskService creates the background log-excerpt service
func ProvideLogTaskService(cfg *config.Config, slicer *services.LogService, logger *zap.Logger) (*services.LogTaskService, error) {
	return services.NewLogTaskService(slicer, cfg.LogTaskWorkers, logger)
}

// ProvideCounterService creates the visit counter
func ProvideCounterService() *services.CounterService {
	return services.NewCounterService()
}
