package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"bookshop/application/services"
	"bookshop/domain/model"
	apperrors "bookshop/pkg/errors"
	"bookshop/pkg/utils"
)

// BookHandler handles book-related HTTP requests
type BookHandler struct {
	books  *services.BookService
	errors *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(books *services.BookService, errors *apperrors.ErrorHandler, logger *zap.Logger) *BookHandler {
	return &BookHandler{books: books, errors: errors, logger: logger}
}

// BookAuthorRequest is an author embedded in a book payload
type BookAuthorRequest struct {
	Name string `json:"name" validate:"required,max=100,authorname"`
}

// BookReviewRequest is a review embedded in a book payload
type BookReviewRequest struct {
	Message string `json:"message" validate:"required,max=400"`
}

// CreateBookRequest represents the request body for creating a book
type CreateBookRequest struct {
	Title   string              `json:"title" validate:"required,max=100"`
	Authors []BookAuthorRequest `json:"authors" validate:"omitempty,dive"`
	Reviews []BookReviewRequest `json:"reviews" validate:"omitempty,dive"`
}

// UpdateBookRequest represents the request body for updating a book
type UpdateBookRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// BookProjection is the flattened view returned by the search endpoints
type BookProjection struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Reviews []string `json:"reviews"`
}

func (r *CreateBookRequest) toModel() *model.Book {
	book := &model.Book{Title: r.Title}
	for _, a := range r.Authors {
		book.Authors = append(book.Authors, &model.Author{Name: a.Name})
	}
	for _, rv := range r.Reviews {
		book.Reviews = append(book.Reviews, &model.Review{Message: rv.Message})
	}
	return book
}

func projectBook(book *model.Book) BookProjection {
	p := BookProjection{
		Title:   book.Title,
		Authors: make([]string, 0, len(book.Authors)),
		Reviews: make([]string, 0, len(book.Reviews)),
	}
	for _, a := range book.Authors {
		p.Authors = append(p.Authors, a.Name)
	}
	for _, r := range book.Reviews {
		p.Reviews = append(p.Reviews, r.Message)
	}
	return p
}

// FindByTitle handles GET /books?title=
func (h *BookHandler) FindByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("title query parameter is required"))
		return
	}

	book, err := h.books.FindByTitle(r.Context(), title)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// FindAll handles GET /books/all
func (h *BookHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.FindAll(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// GetByID handles GET /books/{id}
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	book, err := h.books.FindByID(r.Context(), id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// FindByAuthorName handles GET /books/find?authorName=
func (h *BookHandler) FindByAuthorName(w http.ResponseWriter, r *http.Request) {
	authorName := r.URL.Query().Get("authorName")
	if authorName == "" {
		h.errors.Handle(w, r, apperrors.NewValidationError("authorName query parameter is required"))
		return
	}

	books, err := h.books.FindByAuthorName(r.Context(), authorName)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, projectBooks(books))
}

// FindByReviewCount handles GET /books/find/reviews?reviewCount=
func (h *BookHandler) FindByReviewCount(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("reviewCount")
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || count < 1 {
		h.errors.Handle(w, r, apperrors.NewValidationError("reviewCount must be a positive integer"))
		return
	}

	books, err := h.books.FindByReviewCount(r.Context(), count)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, projectBooks(books))
}

func projectBooks(books []*model.Book) []BookProjection {
	projections := make([]BookProjection, 0, len(books))
	for _, b := range books {
		projections = append(projections, projectBook(b))
	}
	return projections
}

// Create handles POST /books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	book, err := h.books.Save(r.Context(), req.toModel())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, book)
}

// CreateBulk handles POST /books/bulk
func (h *BookHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var reqs []CreateBookRequest
	if err := decodeBody(r, &reqs); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	for _, req := range reqs {
		if err := utils.ValidateStruct(req); err != nil {
			h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
			return
		}
	}

	saved := make([]*model.Book, 0, len(reqs))
	for _, req := range reqs {
		book, err := h.books.Save(r.Context(), req.toModel())
		if err != nil {
			h.errors.Handle(w, r, err)
			return
		}
		saved = append(saved, book)
	}
	respondJSON(w, http.StatusCreated, saved)
}

// Update handles PUT /books/{id}
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req UpdateBookRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	book, err := h.books.Update(r.Context(), id, &model.Book{Title: req.Title})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// Delete handles DELETE /books/{id}
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.books.Delete(r.Context(), id); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
