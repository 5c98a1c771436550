package model

import "github.com/uptrace/bun"

// Review is a book review. A review never exists without an owning book;
// deleting the book removes its reviews with it.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	Message string `bun:"message,notnull" json:"message"`
	// Owning book reference; excluded from JSON (reviews are always
	// rendered in the context of their book).
	BookID int64 `bun:"book_id,notnull" json:"-"`
}
