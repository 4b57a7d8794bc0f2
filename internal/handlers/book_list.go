package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/middlewares"
	"github.com/sbilibin2017/library-catalog/internal/models"
)

// BookLister defines the interface that the book service must implement.
type BookLister interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.BookDB, error)
}

// ListBooksResponse represents the authenticated user's books
// swagger:model ListBooksResponse
type ListBooksResponse struct {
	// Number of books
	Count int `json:"count"`

	// Books, newest first
	Books []models.BookDB `json:"books"`
}

// NewListBooksHandler returns an HTTP handler listing the authenticated
// user's books, newest first.
// @Summary List my books
// @Description Returns all books owned by the authenticated user
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ListBooksResponse "Books"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/books [get]
func NewListBooksHandler(svc BookLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := middlewares.GetUserFromContext(r.Context())
		if current == nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		books, err := svc.List(r.Context(), current.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, ListBooksResponse{
			Count: len(books),
			Books: books,
		})
	}
}
