package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/middlewares"
	"github.com/sbilibin2017/library-catalog/internal/models"
	"github.com/sbilibin2017/library-catalog/internal/services"
)

// BookGetter defines the interface that the book service must implement.
type BookGetter interface {
	Get(ctx context.Context, ownerID, bookID uuid.UUID) (*models.BookDB, error)
}

// bookIDParam parses the book id from the route. A malformed id is
// treated the same as an unknown one.
func bookIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// NewGetBookHandler returns an HTTP handler for reading a single book.
// @Summary Get a book
// @Description Returns one of the authenticated user's books
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book id"
// @Success 200 {object} models.BookDB "Book"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Book not found"
// @Router /api/books/{id} [get]
func NewGetBookHandler(svc BookGetter) http.HandlerFunc {
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

		book, err := svc.Get(r.Context(), current.UserID, bookID)
		if err != nil {
			if errors.Is(err, services.ErrBookNotFound) {
				writeError(w, http.StatusNotFound, "Book not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, book)
	}
}
