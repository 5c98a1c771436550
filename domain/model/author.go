package model

import "github.com/uptrace/bun"

// Author represents a book author. Authors are deduplicated by name and may
// be attached to any number of books; the back-list of books drives the
// orphan-deletion decision when an association is removed.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
	// Back-reference only; excluded from JSON to avoid book/author cycles.
	Books []*Book `bun:"m2m:book_authors,join:Author=Book" json:"-"`
}

// HasBook reports whether the author is linked to the book with the given id.
func (a *Author) HasBook(bookID int64) bool {
	for _, b := range a.Books {
		if b.ID == bookID {
			return true
		}
	}
	return false
}

// AddBook appends a book to the author's back-list if not already linked.
func (a *Author) AddBook(book *Book) {
	if book.ID != 0 && a.HasBook(book.ID) {
		return
	}
	a.Books = append(a.Books, book)
}

// RemoveBook drops the book with the given id from the author's back-list.
// It reports whether an entry was removed.
func (a *Author) RemoveBook(bookID int64) bool {
	for i, b := range a.Books {
		if b.ID == bookID {
			a.Books = append(a.Books[:i], a.Books[i+1:]...)
			return true
		}
	}
	return false
}
