package services

import (
	"context"

	"bookshop/domain/model"
	"bookshop/infrastructure/cache"

	"github.com/stretchr/testify/mock"
)

// MockBookRepository is a testify mock of ports.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	if book := args.Get(0); book != nil {
		return book.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) FindAll(ctx context.Context) ([]*model.Book, error) {
	args := m.Called(ctx)
	if books := args.Get(0); books != nil {
		return books.([]*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	args := m.Called(ctx, title)
	if book := args.Get(0); book != nil {
		return book.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) FindByAuthorName(ctx context.Context, authorName string) ([]*model.Book, error) {
	args := m.Called(ctx, authorName)
	if books := args.Get(0); books != nil {
		return books.([]*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) FindByReviewCount(ctx context.Context, reviewCount int64) ([]*model.Book, error) {
	args := m.Called(ctx, reviewCount)
	if books := args.Get(0); books != nil {
		return books.([]*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) Save(ctx context.Context, book *model.Book) (*model.Book, error) {
	args := m.Called(ctx, book)
	if saved := args.Get(0); saved != nil {
		return saved.(*model.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthorRepository is a testify mock of ports.AuthorRepository
type MockAuthorRepository struct {
	mock.Mock
}

func (m *MockAuthorRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	args := m.Called(ctx, id)
	if author := args.Get(0); author != nil {
		return author.(*model.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthorRepository) FindAll(ctx context.Context) ([]*model.Author, error) {
	args := m.Called(ctx)
	if authors := args.Get(0); authors != nil {
		return authors.([]*model.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthorRepository) FindByName(ctx context.Context, name string) (*model.Author, error) {
	args := m.Called(ctx, name)
	if author := args.Get(0); author != nil {
		return author.(*model.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthorRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthorRepository) Save(ctx context.Context, author *model.Author) (*model.Author, error) {
	args := m.Called(ctx, author)
	if saved := args.Get(0); saved != nil {
		return saved.(*model.Author), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthorRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository is a testify mock of ports.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	if review := args.Get(0); review != nil {
		return review.(*model.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) FindAll(ctx context.Context) ([]*model.Review, error) {
	args := m.Called(ctx)
	if reviews := args.Get(0); reviews != nil {
		return reviews.([]*model.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) FindByBookID(ctx context.Context, bookID int64) ([]*model.Review, error) {
	args := m.Called(ctx, bookID)
	if reviews := args.Get(0); reviews != nil {
		return reviews.([]*model.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *model.Review) (*model.Review, error) {
	args := m.Called(ctx, review)
	if saved := args.Get(0); saved != nil {
		return saved.(*model.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// entityCaches bundles the three caches a test wires into the services,
// using the capacities the application runs with.
type entityCaches struct {
	books   *cache.Bounded[int64, *model.Book]
	authors *cache.Bounded[int64, *model.Author]
	reviews *cache.Bounded[int64, []*model.Review]
}

func newEntityCaches() entityCaches {
	return entityCaches{
		books:   cache.NewBounded[int64, *model.Book](20),
		authors: cache.NewBounded[int64, *model.Author](10),
		reviews: cache.NewBounded[int64, []*model.Review](10),
	}
}
