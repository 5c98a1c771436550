// Package ports defines the persistence interfaces the application layer
// depends on. Implementations live under infrastructure/persistence.
package ports

import (
	"context"

	"bookshop/domain/model"
)

// BookRepository provides persistence for books and their associations.
// Find methods return (nil, nil) when nothing matches; callers decide
// whether absence is an error.
type BookRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindAll(ctx context.Context) ([]*model.Book, error)
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	FindByAuthorName(ctx context.Context, authorName string) ([]*model.Book, error)
	FindByReviewCount(ctx context.Context, reviewCount int64) ([]*model.Book, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save inserts or updates the book and synchronizes its author links
	// and owned reviews with the given association lists.
	Save(ctx context.Context, book *model.Book) (*model.Book, error)

	// DeleteByID removes the book, its author links and its reviews.
	// Authors themselves are left in place.
	DeleteByID(ctx context.Context, id int64) error
}

// AuthorRepository provides persistence for authors.
type AuthorRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Author, error)
	FindAll(ctx context.Context) ([]*model.Author, error)
	FindByName(ctx context.Context, name string) (*model.Author, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save inserts or updates the author and adds any missing book links
	// from the author's book list. Links absent from the list are kept;
	// unlinking is the book side's responsibility.
	Save(ctx context.Context, author *model.Author) (*model.Author, error)

	// DeleteByID removes the author and any remaining book links.
	DeleteByID(ctx context.Context, id int64) error
}

// ReviewRepository provides persistence for reviews.
type ReviewRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Review, error)
	FindAll(ctx context.Context) ([]*model.Review, error)
	FindByBookID(ctx context.Context, bookID int64) ([]*model.Review, error)
	Save(ctx context.Context, review *model.Review) (*model.Review, error)
	DeleteByID(ctx context.Context, id int64) error
}
