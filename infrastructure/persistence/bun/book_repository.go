package bun

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"bookshop/application/ports"
	"bookshop/domain/model"
	apperrors "bookshop/pkg/errors"
)

// BookRepository implements ports.BookRepository on top of bun.
type BookRepository struct {
	db *bun.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *bun.DB) ports.BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	book := new(model.Book)
	err := r.db.NewSelect().
		Model(book).
		Relation("Authors").
		Relation("Reviews").
		Where("b.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find book by id", err)
	}
	return book, nil
}

func (r *BookRepository) FindAll(ctx context.Context) ([]*model.Book, error) {
	var books []*model.Book
	err := r.db.NewSelect().
		Model(&books).
		Relation("Authors").
		Relation("Reviews").
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find all books", err)
	}
	return books, nil
}

func (r *BookRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	book := new(model.Book)
	err := r.db.NewSelect().
		Model(book).
		Relation("Authors").
		Relation("Reviews").
		Where("b.title = ?", title).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find book by title", err)
	}
	return book, nil
}

func (r *BookRepository) FindByAuthorName(ctx context.Context, authorName string) ([]*model.Book, error) {
	var ids []int64
	err := r.db.NewSelect().
		Model((*model.BookAuthor)(nil)).
		Column("ba.book_id").
		Join("JOIN authors AS a ON a.id = ba.author_id").
		Where("a.name = ?", authorName).
		Scan(ctx, &ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find books by author name", err)
	}
	if len(ids) == 0 {
		return []*model.Book{}, nil
	}

	var books []*model.Book
	err = r.db.NewSelect().
		Model(&books).
		Relation("Authors").
		Relation("Reviews").
		Where("b.id IN (?)", bun.In(ids)).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find books by author name", err)
	}
	return books, nil
}

func (r *BookRepository) FindByReviewCount(ctx context.Context, reviewCount int64) ([]*model.Book, error) {
	var ids []int64
	err := r.db.NewSelect().
		Model((*model.Review)(nil)).
		Column("r.book_id").
		Group("r.book_id").
		Having("COUNT(*) >= ?", reviewCount).
		Scan(ctx, &ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find books by review count", err)
	}
	if len(ids) == 0 {
		return []*model.Book{}, nil
	}

	var books []*model.Book
	err = r.db.NewSelect().
		Model(&books).
		Relation("Authors").
		Relation("Reviews").
		Where("b.id IN (?)", bun.In(ids)).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find books by review count", err)
	}
	return books, nil
}

func (r *BookRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*model.Book)(nil)).
		Where("b.id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, apperrors.NewDatabaseError("check book exists", err)
	}
	return exists, nil
}

func (r *BookRepository) Save(ctx context.Context, book *model.Book) (*model.Book, error) {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if book.ID == 0 {
			if _, err := tx.NewInsert().Model(book).Exec(ctx); err != nil {
				return err
			}
		} else {
			if _, err := tx.NewUpdate().Model(book).Column("title").WherePK().Exec(ctx); err != nil {
				return err
			}
		}
		if err := r.syncAuthors(ctx, tx, book); err != nil {
			return err
		}
		return r.syncReviews(ctx, tx, book)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("save book", err)
	}
	return book, nil
}

// syncAuthors persists unsaved authors and makes the join rows match the
// book's author list exactly.
func (r *BookRepository) syncAuthors(ctx context.Context, tx bun.Tx, book *model.Book) error {
	for _, author := range book.Authors {
		if author.ID == 0 {
			if _, err := tx.NewInsert().Model(author).Exec(ctx); err != nil {
				return err
			}
		}
	}

	if _, err := tx.NewDelete().
		Model((*model.BookAuthor)(nil)).
		Where("book_id = ?", book.ID).
		Exec(ctx); err != nil {
		return err
	}
	if len(book.Authors) == 0 {
		return nil
	}

	links := make([]*model.BookAuthor, 0, len(book.Authors))
	for _, author := range book.Authors {
		links = append(links, &model.BookAuthor{BookID: book.ID, AuthorID: author.ID})
	}
	_, err := tx.NewInsert().Model(&links).Exec(ctx)
	return err
}

// syncReviews upserts the book's reviews and removes rows no longer listed.
func (r *BookRepository) syncReviews(ctx context.Context, tx bun.Tx, book *model.Book) error {
	keep := make([]int64, 0, len(book.Reviews))
	for _, review := range book.Reviews {
		review.BookID = book.ID
		if review.ID == 0 {
			if _, err := tx.NewInsert().Model(review).Exec(ctx); err != nil {
				return err
			}
		} else {
			if _, err := tx.NewUpdate().Model(review).WherePK().Exec(ctx); err != nil {
				return err
			}
		}
		keep = append(keep, review.ID)
	}

	q := tx.NewDelete().
		Model((*model.Review)(nil)).
		Where("book_id = ?", book.ID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN (?)", bun.In(keep))
	}
	_, err := q.Exec(ctx)
	return err
}

func (r *BookRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.Review)(nil)).
			Where("book_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*model.BookAuthor)(nil)).
			Where("book_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*model.Book)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete book", err)
	}
	return nil
}
