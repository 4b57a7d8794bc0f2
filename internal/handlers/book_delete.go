package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/middlewares"
	"github.com/sbilibin2017/library-catalog/internal/services"
)

// BookDeleter defines the interface that the book service must implement.
type BookDeleter interface {
	Delete(ctx context.Context, ownerID, bookID uuid.UUID) error
}

// DeleteBookResponse represents a successful book deletion
// swagger:model DeleteBookResponse
type DeleteBookResponse struct {
	// Success message
	// default: Book deleted
	Message string `json:"message"`
}

// NewDeleteBookHandler returns an HTTP handler for deleting a book.
// @Summary Delete a book
// @Description Deletes one of the authenticated user's books
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book id"
// @Success 200 {object} handlers.DeleteBookResponse "Book deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Book not found"
// @Router /api/books/{id} [delete]
func NewDeleteBookHandler(svc BookDeleter) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), current.UserID, bookID); err != nil {
			if errors.Is(err, services.ErrBookNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, DeleteBookResponse{
			Message: "Book deleted",
		})
	}
}
