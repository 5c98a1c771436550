// Package services holds the application services that coordinate the
// relational repositories with the in-process entity caches.
package services

import (
	"context"

	"bookshop/application/ports"
	"bookshop/domain/model"
	"bookshop/infrastructure/cache"
	apperrors "bookshop/pkg/errors"

	"go.uber.org/zap"
)

// BookService owns the book-by-id cache. Reads go through the cache, updates
// are written through it, deletes invalidate it together with the caches of
// the sibling services that hold denormalized copies of book data.
type BookService struct {
	books   ports.BookRepository
	authors ports.AuthorRepository

	bookCache   *cache.Bounded[int64, *model.Book]
	authorCache *cache.Bounded[int64, *model.Author]
	reviewCache *cache.Bounded[int64, []*model.Review]

	logger *zap.Logger
}

// NewBookService creates a book service
func NewBookService(
	books ports.BookRepository,
	authors ports.AuthorRepository,
	bookCache *cache.Bounded[int64, *model.Book],
	authorCache *cache.Bounded[int64, *model.Author],
	reviewCache *cache.Bounded[int64, []*model.Review],
	logger *zap.Logger,
) *BookService {
	return &BookService{
		books:       books,
		authors:     authors,
		bookCache:   bookCache,
		authorCache: authorCache,
		reviewCache: reviewCache,
		logger:      logger,
	}
}

// FindByID returns the book with the given id, serving from the cache when
// possible and populating it on a miss.
func (s *BookService) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	if book, ok := s.bookCache.Get(id); ok {
		s.logger.Debug("Book cache hit", zap.Int64("bookID", id))
		return book, nil
	}

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.NewNotFoundError("Book")
	}

	s.bookCache.Put(id, book)
	return book, nil
}

// FindAll returns every book. Uncached.
func (s *BookService) FindAll(ctx context.Context) ([]*model.Book, error) {
	return s.books.FindAll(ctx)
}

// FindByTitle returns the book with the exact title. Uncached.
func (s *BookService) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	book, err := s.books.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.NewNotFoundError("Book")
	}
	return book, nil
}

// FindByAuthorName returns the books that list an author with the given
// name. Uncached.
func (s *BookService) FindByAuthorName(ctx context.Context, authorName string) ([]*model.Book, error) {
	return s.books.FindByAuthorName(ctx, authorName)
}

// FindByReviewCount returns the books with at least reviewCount reviews.
// Uncached.
func (s *BookService) FindByReviewCount(ctx context.Context, reviewCount int64) ([]*model.Book, error) {
	return s.books.FindByReviewCount(ctx, reviewCount)
}

// Save creates a book. Embedded authors are deduplicated by name against the
// store: a known name reuses the persisted author instead of inserting a
// duplicate row.
func (s *BookService) Save(ctx context.Context, book *model.Book) (*model.Book, error) {
	for i, author := range book.Authors {
		exists, err := s.authors.ExistsByName(ctx, author.Name)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		existing, err := s.authors.FindByName(ctx, author.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			book.Authors[i] = existing
		}
	}

	for _, review := range book.Reviews {
		review.BookID = book.ID
	}

	return s.books.Save(ctx, book)
}

// Update overwrites the book's title, keeping its persisted author and
// review associations, and writes the merged result through the cache.
func (s *BookService) Update(ctx context.Context, id int64, book *model.Book) (*model.Book, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The caller-supplied association lists are discarded: title is the
	// only field an update may change.
	book.ID = id
	book.Authors = existing.Authors
	book.Reviews = existing.Reviews

	saved, err := s.books.Save(ctx, book)
	if err != nil {
		return nil, err
	}

	s.bookCache.Put(id, saved)
	return saved, nil
}

// Delete removes the book and its reviews from the store, then invalidates
// every cache view that may embed data of the deleted book. The author cache
// is cleared wholesale: which cached authors still hold a back-reference to
// this book cannot be re-validated cheaply.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	exists, err := s.books.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFoundError("Book")
	}

	if err := s.books.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.bookCache.Remove(id)
	s.reviewCache.Remove(id)
	s.authorCache.Clear()
	s.logger.Debug("Book deleted, caches invalidated", zap.Int64("bookID", id))
	return nil
}

// ClearCache empties the book cache unconditionally. Sibling services invoke
// it before mutations that could invalidate cached book snapshots in ways
// that cannot be patched entry by entry.
func (s *BookService) ClearCache() {
	s.bookCache.Clear()
}
