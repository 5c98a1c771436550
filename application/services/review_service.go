package services

import (
	"context"

	"bookshop/application/ports"
	"bookshop/domain/model"
	"bookshop/infrastructure/cache"
	apperrors "bookshop/pkg/errors"

	"go.uber.org/zap"
)

// ReviewService owns the per-book review-list cache. Review mutations keep
// two cached views consistent without a second database round-trip: the
// dedicated review list for the book, and the review list embedded in the
// cached book entity, when either is present.
type ReviewService struct {
	reviews ports.ReviewRepository
	books   ports.BookRepository

	reviewCache *cache.Bounded[int64, []*model.Review]
	bookCache   *cache.Bounded[int64, *model.Book]

	logger *zap.Logger
}

// NewReviewService creates a review service
func NewReviewService(
	reviews ports.ReviewRepository,
	books ports.BookRepository,
	reviewCache *cache.Bounded[int64, []*model.Review],
	bookCache *cache.Bounded[int64, *model.Book],
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		books:       books,
		reviewCache: reviewCache,
		bookCache:   bookCache,
		logger:      logger,
	}
}

// Create attaches a new review to a book. After the write is persisted the
// cached book (if any) gains the review in place, while the review-list
// cache is cleared wholesale: a new review changes the identity of the list,
// so invalidating a single key is not enough.
func (s *ReviewService) Create(ctx context.Context, bookID int64, review *model.Review) (*model.Review, error) {
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperrors.NewNotFoundError("Book")
	}

	review.BookID = bookID
	saved, err := s.reviews.Save(ctx, review)
	if err != nil {
		return nil, err
	}

	s.bookCache.Patch(func(key int64, cached *model.Book) (*model.Book, bool) {
		if key != bookID {
			return nil, false
		}
		patched := cached.Clone()
		patched.AddReview(saved)
		return patched, true
	})
	s.reviewCache.Clear()
	return saved, nil
}

// Update changes a review's message. The review must be part of the book's
// review list at lookup time; an id that exists in the store but is not
// associated with this book is treated as not found. Both cached views are
// patched by id after the write.
func (s *ReviewService) Update(ctx context.Context, reviewID int64, review *model.Review, bookID int64) (*model.Review, error) {
	book, ok := s.bookCache.Get(bookID)
	if !ok {
		var err error
		book, err = s.books.FindByID(ctx, bookID)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return nil, apperrors.NewNotFoundError("Book")
		}
	}

	target := book.FindReview(reviewID)
	if target == nil {
		return nil, apperrors.NewNotFoundError("Review")
	}

	updated := *target
	updated.Message = review.Message
	saved, err := s.reviews.Save(ctx, &updated)
	if err != nil {
		return nil, err
	}

	s.patchCaches(bookID, func(b *model.Book) { b.ReplaceReview(saved) },
		func(list []*model.Review) []*model.Review {
			patched := make([]*model.Review, len(list))
			copy(patched, list)
			for i, r := range patched {
				if r.ID == reviewID {
					patched[i] = saved
				}
			}
			return patched
		})
	return saved, nil
}

// Delete removes a review from the store unconditionally and propagates the
// removal into both cached views.
func (s *ReviewService) Delete(ctx context.Context, reviewID, bookID int64) error {
	if err := s.reviews.DeleteByID(ctx, reviewID); err != nil {
		return err
	}

	s.patchCaches(bookID, func(b *model.Book) { b.RemoveReview(reviewID) },
		func(list []*model.Review) []*model.Review {
			patched := make([]*model.Review, 0, len(list))
			for _, r := range list {
				if r.ID != reviewID {
					patched = append(patched, r)
				}
			}
			return patched
		})
	s.logger.Debug("Review deleted", zap.Int64("reviewID", reviewID), zap.Int64("bookID", bookID))
	return nil
}

// GetByBookID returns the reviews of a book, serving from the review-list
// cache and populating it on a miss.
func (s *ReviewService) GetByBookID(ctx context.Context, bookID int64) ([]*model.Review, error) {
	if list, ok := s.reviewCache.Get(bookID); ok {
		s.logger.Debug("Review list cache hit", zap.Int64("bookID", bookID))
		return list, nil
	}

	list, err := s.reviews.FindByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	s.reviewCache.Put(bookID, list)
	return list, nil
}

// FindAll returns every review. Uncached full scan.
func (s *ReviewService) FindAll(ctx context.Context) ([]*model.Review, error) {
	return s.reviews.FindAll(ctx)
}

// patchCaches applies the same logical review mutation to the cached book
// entry and the cached review list for bookID, keeping the two views
// mutually consistent. Either patch is a no-op if the entry is absent.
func (s *ReviewService) patchCaches(bookID int64, patchBook func(*model.Book), patchList func([]*model.Review) []*model.Review) {
	s.bookCache.Patch(func(key int64, cached *model.Book) (*model.Book, bool) {
		if key != bookID {
			return nil, false
		}
		patched := cached.Clone()
		patchBook(patched)
		return patched, true
	})
	s.reviewCache.Patch(func(key int64, list []*model.Review) ([]*model.Review, bool) {
		if key != bookID {
			return nil, false
		}
		return patchList(list), true
	})
}
