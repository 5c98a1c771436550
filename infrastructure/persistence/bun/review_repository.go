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

// ReviewRepository implements ports.ReviewRepository on top of bun.
type ReviewRepository struct {
	db *bun.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *bun.DB) ports.ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) FindByID(ctx context.Context, id int64) (*model.Review, error) {
	review := new(model.Review)
	err := r.db.NewSelect().
		Model(review).
		Where("r.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("find review by id", err)
	}
	return review, nil
}

func (r *ReviewRepository) FindAll(ctx context.Context) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.NewSelect().
		Model(&reviews).
		Order("r.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find all reviews", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) FindByBookID(ctx context.Context, bookID int64) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.NewSelect().
		Model(&reviews).
		Where("r.book_id = ?", bookID).
		Order("r.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find reviews by book id", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Save(ctx context.Context, review *model.Review) (*model.Review, error) {
	var err error
	if review.ID == 0 {
		_, err = r.db.NewInsert().Model(review).Exec(ctx)
	} else {
		_, err = r.db.NewUpdate().Model(review).WherePK().Exec(ctx)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("save review", err)
	}
	return review, nil
}

func (r *ReviewRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*model.Review)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return apperrors.NewDatabaseError("delete review", err)
	}
	return nil
}
