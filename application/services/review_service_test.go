package services

import (
	"context"
	"testing"

	"bookshop/domain/model"
	apperrors "bookshop/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReviewService(reviews *MockReviewRepository, books *MockBookRepository, caches entityCaches) *ReviewService {
	return NewReviewService(reviews, books, caches.reviews, caches.books, zap.NewNop())
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	books := new(MockBookRepository)
	caches := newEntityCaches()
	svc := newReviewService(reviews, books, caches)

	book := &model.Book{ID: 3, Title: "Cached"}
	caches.books.Put(3, book)
	caches.reviews.Put(3, []*model.Review{})
	caches.reviews.Put(4, []*model.Review{{ID: 2, BookID: 4}})

	saved := &model.Review{ID: 9, Message: "Great read", BookID: 3}
	books.On("FindByID", ctx, int64(3)).Return(book, nil)
	reviews.On("Save", ctx, mock.AnythingOfType("*model.Review")).Return(saved, nil)

	created, err := svc.Create(ctx, 3, &model.Review{Message: "Great read"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)

	// The cached book gained the review in place.
	cached, ok := caches.books.Get(3)
	require.True(t, ok)
	assert.True(t, cached.HasReview(9))

	// The review-list cache was cleared wholesale, not just for this book.
	assert.Equal(t, 0, caches.reviews.Len())
}

func TestReviewService_Create_BookMissing(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	books := new(MockBookRepository)
	svc := newReviewService(reviews, books, newEntityCaches())

	books.On("FindByID", ctx, int64(42)).Return(nil, nil)

	_, err := svc.Create(ctx, 42, &model.Review{Message: "lost"})
	assert.True(t, apperrors.IsNotFound(err))
	reviews.AssertNotCalled(t, "Save", ctx, mock.Anything)
}

func TestReviewService_Update_PatchesBothViews(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	books := new(MockBookRepository)
	caches := newEntityCaches()
	svc := newReviewService(reviews, books, caches)

	stale := &model.Review{ID: 9, Message: "Old", BookID: 3}
	book := &model.Book{ID: 3, Title: "Cached", Reviews: []*model.Review{stale}}
	caches.books.Put(3, book)
	caches.reviews.Put(3, []*model.Review{stale})

	saved := &model.Review{ID: 9, Message: "New", BookID: 3}
	reviews.On("Save", ctx, mock.AnythingOfType("*model.Review")).Return(saved, nil)

	updated, err := svc.Update(ctx, 9, &model.Review{Message: "New"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Message)

	cachedBook, ok := caches.books.Get(3)
	require.True(t, ok)
	assert.Equal(t, "New", cachedBook.FindReview(9).Message)

	cachedList, ok := caches.reviews.Get(3)
	require.True(t, ok)
	require.Len(t, cachedList, 1)
	assert.Equal(t, "New", cachedList[0].Message)

	// The book was served from cache; the repository was never consulted.
	books.AssertNotCalled(t, "FindByID", ctx, int64(3))
}

func TestReviewService_Update_FallsBackToRepository(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	books := new(MockBookRepository)
	svc := newReviewService(reviews, books, newEntityCaches())

	stale := &model.Review{ID: 9, Message: "Old", BookID: 3}
	book := &model.Book{ID: 3, Title: "Uncached", Reviews: []*model.Review{stale}}
	saved := &model.Review{ID: 9, Message: "New", BookID: 3}

	books.On("FindByID", ctx, int64(3)).Return(book, nil)
	reviews.On("Save", ctx, mock.AnythingOfType("*model.Review")).Return(saved, nil)

	updated, err := svc.Update(ctx, 9, &model.Review{Message: "New"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Message)
	books.AssertExpectations(t)
}

func TestReviewService_Update_ReviewNotOnBook(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	books := new(MockBookRepository)
	svc := newReviewService(reviews, books, newEntityCaches())

	// The review id may exist in the store; what matters is that the
	// book's review list does not contain it.
	book := &model.Book{ID: 3, Title: "No reviews"}
	books.On("FindByID", ctx, int64(3)).Return(book, nil)

	_, err := svc.Update(ctx, 9, &model.Review{Message: "New"}, 3)
	assert.True(t, apperrors.IsNotFound(err))
	reviews.AssertNotCalled(t, "Save", ctx, mock.Anything)
}

func TestReviewService_Delete_PatchesBothViews(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	books := new(MockBookRepository)
	caches := newEntityCaches()
	svc := newReviewService(reviews, books, caches)

	doomed := &model.Review{ID: 9, Message: "Doomed", BookID: 3}
	keeper := &model.Review{ID: 10, Message: "Keeper", BookID: 3}
	book := &model.Book{ID: 3, Title: "Cached", Reviews: []*model.Review{doomed, keeper}}
	caches.books.Put(3, book)
	caches.reviews.Put(3, []*model.Review{doomed, keeper})

	reviews.On("DeleteByID", ctx, int64(9)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 9, 3))

	cachedBook, ok := caches.books.Get(3)
	require.True(t, ok)
	assert.False(t, cachedBook.HasReview(9))
	assert.True(t, cachedBook.HasReview(10))

	cachedList, ok := caches.reviews.Get(3)
	require.True(t, ok)
	require.Len(t, cachedList, 1)
	assert.Equal(t, int64(10), cachedList[0].ID)
}

func TestReviewService_GetByBookID_CacheThrough(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	books := new(MockBookRepository)
	svc := newReviewService(reviews, books, newEntityCaches())

	list := []*model.Review{{ID: 1, BookID: 3}, {ID: 2, BookID: 3}}
	reviews.On("FindByBookID", ctx, int64(3)).Return(list, nil).Once()

	first, err := svc.GetByBookID(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.GetByBookID(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	reviews.AssertExpectations(t)
}
