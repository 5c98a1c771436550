package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"bookshop/application/services"
	"bookshop/domain/model"
	apperrors "bookshop/pkg/errors"
	"bookshop/pkg/utils"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviews *services.ReviewService
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *services.ReviewService, errors *apperrors.ErrorHandler, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, errors: errors, logger: logger}
}

// ReviewRequest represents a review payload
type ReviewRequest struct {
	Message string `json:"message" validate:"required,max=400"`
}

// ListForBook handles GET /books/{bookID}/reviews
func (h *ReviewHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseIDParam(r, "bookID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	reviews, err := h.reviews.GetByBookID(r.Context(), bookID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

// ListAll handles GET /reviews
func (h *ReviewHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.FindAll(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

// Create handles POST /books/{bookID}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseIDParam(r, "bookID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	review, err := h.reviews.Create(r.Context(), bookID, &model.Review{Message: req.Message})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

// Update handles PUT /books/{bookID}/reviews/{reviewID}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseIDParam(r, "bookID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	review, err := h.reviews.Update(r.Context(), reviewID, &model.Review{Message: req.Message}, bookID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// Delete handles DELETE /books/{bookID}/reviews/{reviewID}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseIDParam(r, "bookID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.reviews.Delete(r.Context(), reviewID, bookID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
