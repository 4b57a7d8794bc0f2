package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/middlewares"
	"github.com/sbilibin2017/library-catalog/internal/models"
	"github.com/sbilibin2017/library-catalog/internal/services"
)

// BookUpdater defines the interface that the book service must implement.
type BookUpdater interface {
	Update(ctx context.Context, ownerID, bookID uuid.UUID, title, author, category *string, available *bool) (*models.BookDB, error)
}

// UpdateBookRequest represents the JSON body for updating a book.
// All fields are optional but at least one must be provided.
// swagger:model UpdateBookRequest
type UpdateBookRequest struct {
	// New title, optional
	Title *string `json:"title,omitempty"`

	// New author, optional
	Author *string `json:"author,omitempty"`

	// New category, optional
	Category *string `json:"category,omitempty"`

	// New availability flag, optional
	Available *bool `json:"available,omitempty"`
}

func (req *UpdateBookRequest) validate() []string {
	var errs []string
	if req.Title != nil && !lengthBetween(*req.Title, 2, 100) {
		errs = append(errs, "title must be between 2 and 100 characters")
	}
	if req.Author != nil && !lengthBetween(*req.Author, 2, 100) {
		errs = append(errs, "author must be between 2 and 100 characters")
	}
	if req.Category != nil && !lengthBetween(*req.Category, 2, 50) {
		errs = append(errs, "category must be between 2 and 50 characters")
	}
	return errs
}

// UpdateBookResponse represents a successful book update
// swagger:model UpdateBookResponse
type UpdateBookResponse struct {
	// Success message
	// default: Book updated
	Message string `json:"message"`

	// Updated book
	Book models.BookDB `json:"book"`
}

// NewUpdateBookHandler returns an HTTP handler for updating a book.
// @Summary Update a book
// @Description Updates fields of one of the authenticated user's books
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book id"
// @Param updateBookRequest body handlers.UpdateBookRequest true "Book update request"
// @Success 200 {object} handlers.UpdateBookResponse "Book updated"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Book not found"
// @Router /api/books/{id} [put]
func NewUpdateBookHandler(svc BookUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := middlewares.GetUserFromContext(r.Context())
		if current == nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		bookID, ok := bookIDParam(r)
		if !ok {
			writeError(w, http.StatusNotFound, "Book not found")
			return
		}

		var req UpdateBookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if errs := req.validate(); len(errs) > 0 {
			writeError(w, http.StatusBadRequest, "Validation error", errs...)
			return
		}

		book, err := svc.Update(r.Context(), current.UserID, bookID, req.Title, req.Author, req.Category, req.Available)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyUpdate):
				writeError(w, http.StatusBadRequest, "Send at least one field to update")
			case errors.Is(err, services.ErrBookNotFound):
				writeError(w, http.StatusNotFound, "Book not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, UpdateBookResponse{
			Message: "Book updated",
			Book:    *book,
		})
	}
}
