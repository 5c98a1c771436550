package services

import (
	"context"

	"bookshop/application/ports"
	"bookshop/domain/model"
	"bookshop/infrastructure/cache"
	apperrors "bookshop/pkg/errors"

	"go.uber.org/zap"
)

// AuthorService owns the author-by-id cache. Because cached books embed full
// author objects rather than references, an author update must sweep the
// book cache and patch every embedded copy in place.
type AuthorService struct {
	authors ports.AuthorRepository
	books   ports.BookRepository
	bookSvc *BookService

	authorCache *cache.Bounded[int64, *model.Author]
	bookCache   *cache.Bounded[int64, *model.Book]

	logger *zap.Logger
}

// NewAuthorService creates an author service
func NewAuthorService(
	authors ports.AuthorRepository,
	books ports.BookRepository,
	bookSvc *BookService,
	authorCache *cache.Bounded[int64, *model.Author],
	bookCache *cache.Bounded[int64, *model.Book],
	logger *zap.Logger,
) *AuthorService {
	return &AuthorService{
		authors:     authors,
		books:       books,
		bookSvc:     bookSvc,
		authorCache: authorCache,
		bookCache:   bookCache,
		logger:      logger,
	}
}

// FindByID returns the author with the given id, scoped to the given book.
// An author id that is valid in isolation but not linked to the book is not
// found from that book's perspective.
func (s *AuthorService) FindByID(ctx context.Context, authorID, bookID int64) (*model.Author, error) {
	exists, err := s.books.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("Book")
	}

	book, err := s.bookSvc.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	author, ok := s.authorCache.Get(authorID)
	if !ok {
		author, err = s.authors.FindByID(ctx, authorID)
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, apperrors.NewNotFoundError("Author")
		}
		s.authorCache.Put(authorID, author)
	} else {
		s.logger.Debug("Author cache hit", zap.Int64("authorID", authorID))
	}

	if !book.HasAuthor(authorID) {
		return nil, apperrors.NewNotFoundError("Author")
	}
	return author, nil
}

// FindAll returns every author. Uncached.
func (s *AuthorService) FindAll(ctx context.Context) ([]*model.Author, error) {
	return s.authors.FindAll(ctx)
}

// Save attaches an author to a book, reusing a persisted author with the
// same name instead of inserting a duplicate. The book cache is cleared up
// front: there is no telling which cached books will gain this author.
func (s *AuthorService) Save(ctx context.Context, author *model.Author, bookID int64) (*model.Author, error) {
	s.bookSvc.ClearCache()

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.NewNotFoundError("Book")
	}

	// Name is the de-facto natural key: a known name reuses the persisted
	// author and unions its existing book list.
	exists, err := s.authors.ExistsByName(ctx, author.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		existing, err := s.authors.FindByName(ctx, author.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			author = existing
		}
	}

	if author.ID == 0 || !book.HasAuthor(author.ID) {
		book.AddAuthor(author)
		author.AddBook(book)
	}

	return s.authors.Save(ctx, author)
}

// Update renames an author, then restores consistency: the author cache is
// cleared outright, and the book cache is swept to replace every embedded
// stale copy with the updated one. Books are read far more often than
// authors change, which is what makes the sweep worth its cost.
func (s *AuthorService) Update(ctx context.Context, id int64, author *model.Author) (*model.Author, error) {
	if !s.authorCache.ContainsKey(id) {
		exists, err := s.authors.ExistsByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewNotFoundError("Author")
		}
	}

	author.ID = id
	saved, err := s.authors.Save(ctx, author)
	if err != nil {
		return nil, err
	}

	s.authorCache.Clear()
	s.bookCache.Patch(func(_ int64, book *model.Book) (*model.Book, bool) {
		if !book.HasAuthor(id) {
			return nil, false
		}
		patched := book.Clone()
		patched.ReplaceAuthor(saved)
		return patched, true
	})
	s.logger.Debug("Author updated, book cache patched", zap.Int64("authorID", id))
	return saved, nil
}

// Delete detaches the author from the given book. An author left with no
// book associations is deleted outright; otherwise only its reduced book
// list is persisted, reusing Update's cross-patch path.
func (s *AuthorService) Delete(ctx context.Context, id, bookID int64) error {
	s.bookSvc.ClearCache()

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return apperrors.NewNotFoundError("Book")
	}

	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if author == nil || !book.HasAuthor(id) {
		return apperrors.NewNotFoundError("Author")
	}

	book.RemoveAuthor(id)
	if _, err := s.books.Save(ctx, book); err != nil {
		return err
	}

	author.RemoveBook(bookID)
	if len(author.Books) == 0 {
		// Orphaned author: no remaining associations, delete outright.
		if err := s.authors.DeleteByID(ctx, id); err != nil {
			return err
		}
		s.authorCache.Remove(id)
		s.logger.Debug("Orphaned author deleted", zap.Int64("authorID", id))
		return nil
	}

	_, err = s.Update(ctx, id, author)
	return err
}
