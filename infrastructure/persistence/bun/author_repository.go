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

// AuthorRepository implements ports.AuthorRepository on top of bun.
type AuthorRepository struct {
	db *bun.DB
}

// NewAuthorRepository creates a new author repository.
func NewAuthorRepository(db *bun.DB) ports.AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	author := new(model.Author)
	err := r.db.NewSelect().
		Model(author).
		Relation("Books").
		Where("a.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find author by id", err)
	}
	return author, nil
}

func (r *AuthorRepository) FindAll(ctx context.Context) ([]*model.Author, error) {
	var authors []*model.Author
	err := r.db.NewSelect().
		Model(&authors).
		Relation("Books").
		Order("a.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find all authors", err)
	}
	return authors, nil
}

func (r *AuthorRepository) FindByName(ctx context.Context, name string) (*model.Author, error) {
	author := new(model.Author)
	err := r.db.NewSelect().
		Model(author).
		Relation("Books").
		Where("a.name = ?", name).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find author by name", err)
	}
	return author, nil
}

func (r *AuthorRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*model.Author)(nil)).
		Where("a.id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, apperrors.NewDatabaseError("check author exists", err)
	}
	return exists, nil
}

func (r *AuthorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*model.Author)(nil)).
		Where("a.name = ?", name).
		Exists(ctx)
	if err != nil {
		return false, apperrors.NewDatabaseError("check author exists by name", err)
	}
	return exists, nil
}

func (r *AuthorRepository) Save(ctx context.Context, author *model.Author) (*model.Author, error) {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if author.ID == 0 {
			if _, err := tx.NewInsert().Model(author).Exec(ctx); err != nil {
				return err
			}
		} else {
			if _, err := tx.NewUpdate().Model(author).Column("name").WherePK().Exec(ctx); err != nil {
				return err
			}
		}

		// Link sync is additive: rows for books no longer in the list are
		// the book side's responsibility to remove.
		for _, book := range author.Books {
			link := &model.BookAuthor{BookID: book.ID, AuthorID: author.ID}
			exists, err := tx.NewSelect().
				Model((*model.BookAuthor)(nil)).
				Where("book_id = ? AND author_id = ?", book.ID, author.ID).
				Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := tx.NewInsert().Model(link).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("save author", err)
	}
	return author, nil
}

func (r *AuthorRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.BookAuthor)(nil)).
			Where("author_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*model.Author)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete author", err)
	}
	return nil
}
