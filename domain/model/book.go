package model

import "github.com/uptrace/bun"

// Book represents a book together with its authors and reviews.
// Authors are shared across books (many-to-many); reviews are owned by the
// book (one-to-many, removed with it).
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID      int64     `bun:"id,pk,autoincrement" json:"id"`
	Title   string    `bun:"title,notnull" json:"title"`
	Authors []*Author `bun:"m2m:book_authors,join:Book=Author" json:"authors"`
	Reviews []*Review `bun:"rel:has-many,join:id=book_id" json:"reviews"`
}

// HasAuthor reports whether the book lists an author with the given id.
// Membership is id-based, never pointer identity.
func (b *Book) HasAuthor(authorID int64) bool {
	for _, a := range b.Authors {
		if a.ID == authorID {
			return true
		}
	}
	return false
}

// AddAuthor appends an author if no author with the same id is present.
func (b *Book) AddAuthor(author *Author) {
	if author.ID != 0 && b.HasAuthor(author.ID) {
		return
	}
	b.Authors = append(b.Authors, author)
}

// RemoveAuthor drops the author with the given id from the book's author
// list. It reports whether an entry was removed.
func (b *Book) RemoveAuthor(authorID int64) bool {
	for i, a := range b.Authors {
		if a.ID == authorID {
			b.Authors = append(b.Authors[:i], b.Authors[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceAuthor swaps the stale copy of an author (matched by id) for the
// given one. It reports whether a replacement happened.
func (b *Book) ReplaceAuthor(author *Author) bool {
	for i, a := range b.Authors {
		if a.ID == author.ID {
			b.Authors[i] = author
			return true
		}
	}
	return false
}

// HasReview reports whether the book owns a review with the given id.
func (b *Book) HasReview(reviewID int64) bool {
	for _, r := range b.Reviews {
		if r.ID == reviewID {
			return true
		}
	}
	return false
}

// FindReview returns the owned review with the given id, or nil.
func (b *Book) FindReview(reviewID int64) *Review {
	for _, r := range b.Reviews {
		if r.ID == reviewID {
			return r
		}
	}
	return nil
}

// AddReview appends a review to the book's review list.
func (b *Book) AddReview(review *Review) {
	b.Reviews = append(b.Reviews, review)
}

// RemoveReview drops the review with the given id.
func (b *Book) RemoveReview(reviewID int64) bool {
	for i, r := range b.Reviews {
		if r.ID == reviewID {
			b.Reviews = append(b.Reviews[:i], b.Reviews[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceReview swaps the stale copy of a review (matched by id) for the
// given one. It reports whether a replacement happened.
func (b *Book) ReplaceReview(review *Review) bool {
	for i, r := range b.Reviews {
		if r.ID == review.ID {
			b.Reviews[i] = review
			return true
		}
	}
	return false
}

// Clone returns a copy of the book with its own author and review slices.
// Element pointers are shared; callers patching a cached book clone it first
// so readers holding the previous snapshot are never mutated underneath.
func (b *Book) Clone() *Book {
	clone := *b
	if b.Authors != nil {
		clone.Authors = make([]*Author, len(b.Authors))
		copy(clone.Authors, b.Authors)
	}
	if b.Reviews != nil {
		clone.Reviews = make([]*Review, len(b.Reviews))
		copy(clone.Reviews, b.Reviews)
	}
	return &clone
}

// BookAuthor is the join model backing the book/author many-to-many
// relation. Registered with bun at startup.
type BookAuthor struct {
	bun.BaseModel `bun:"table:book_authors,alias:ba"`

	BookID   int64   `bun:"book_id,pk"`
	Book     *Book   `bun:"rel:belongs-to,join:book_id=id"`
	AuthorID int64   `bun:"author_id,pk"`
	Author   *Author `bun:"rel:belongs-to,join:author_id=id"`
}
