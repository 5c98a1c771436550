package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"bookshop/application/services"
	"bookshop/domain/model"
	apperrors "bookshop/pkg/errors"
	"bookshop/pkg/utils"
)

// AuthorHandler handles author-related HTTP requests. Authors are always
// addressed through an owning book.
type AuthorHandler struct {
	authors *services.AuthorService
	books   *services.BookService
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(
	authors *services.AuthorService,
	books *services.BookService,
	errors *apperrors.ErrorHandler,
	logger *zap.Logger,
) *AuthorHandler {
	return &AuthorHandler{authors: authors, books: books, errors: errors, logger: logger}
}

// AuthorRequest represents an author payload
type AuthorRequest struct {
	Name string `json:"name" validate:"required,max=100,authorname"`
}

// ListForBook handles GET /books/{bookID}/authors
func (h *AuthorHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseIDParam(r, "bookID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	book, err := h.books.FindByID(r.Context(), bookID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	authors := book.Authors
	if authors == nil {
		authors = []*model.Author{}
	}
	respondJSON(w, http.StatusOK, authors)
}

// ListAll handles GET /books/{bookID}/authors/all
func (h *AuthorHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authors.FindAll(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, authors)
}

// GetByID handles GET /books/{bookID}/authors/{authorID}
func (h *AuthorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseIDParam(r, "bookID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	authorID, err := parseIDParam(r, "authorID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	author, err := h.authors.FindByID(r.Context(), authorID, bookID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, author)
}

// Create handles POST /books/{bookID}/authors
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseIDParam(r, "bookID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req AuthorRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	author, err := h.authors.Save(r.Context(), &model.Author{Name: req.Name}, bookID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, author)
}

// Update handles PUT /books/{bookID}/authors/{authorID}
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := parseIDParam(r, "bookID"); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	authorID, err := parseIDParam(r, "authorID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req AuthorRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	author, err := h.authors.Update(r.Context(), authorID, &model.Author{Name: req.Name})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, author)
}

// Delete handles DELETE /books/{bookID}/authors/{authorID}
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseIDParam(r, "bookID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	authorID, err := parseIDParam(r, "authorID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.authors.Delete(r.Context(), authorID, bookID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
