package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/middlewares"
	"github.com/sbilibin2017/library-catalog/internal/models"
)

// BookCreator defines the interface that the book service must implement.
type BookCreator interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, author, category string, available bool) (*models.BookDB, error)
}

// CreateBookRequest represents the JSON body for creating a book
// swagger:model CreateBookRequest
type CreateBookRequest struct {
	// Title
	// required: true
	// default: The Go Programming Language
	Title string `json:"title"`

	// Author
	// required: true
	// default: Alan Donovan
	Author string `json:"author"`

	// Category
	// required: true
	// default: programming
	Category string `json:"category"`

	// Availability flag, defaults to true
	Available *bool `json:"available,omitempty"`
}

func (req *CreateBookRequest) validate() []string {
	var errs []string
	if !lengthBetween(req.Title, 2, 100) {
		errs = append(errs, "title must be between 2 and 100 characters")
	}
	if !lengthBetween(req.Author, 2, 100) {
		errs = append(errs, "author must be between 2 and 100 characters")
	}
	if !lengthBetween(req.Category, 2, 50) {
		errs = append(errs, "category must be between 2 and 50 characters")
	}
	return errs
}

// CreateBookResponse represents a successful book creation
// swagger:model CreateBookResponse
type CreateBookResponse struct {
	// Success message
	// default: Book created
	Message string `json:"message"`

	// Created book
	Book models.BookDB `json:"book"`
}

// NewCreateBookHandler returns an HTTP handler for creating a book.
// @Summary Create a book
// @Description Adds a book to the authenticated user's catalog
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createBookRequest body handlers.CreateBookRequest true "Book creation request"
// @Success 201 {object} handlers.CreateBookResponse "Book created"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /api/books [post]
func NewCreateBookHandler(svc BookCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := middlewares.GetUserFromContext(r.Context())
		if current == nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		var req CreateBookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if errs := req.validate(); len(errs) > 0 {
			writeError(w, http.StatusBadRequest, "Validation error", errs...)
			return
		}

		available := true
		if req.Available != nil {
			available = *req.Available
		}

		book, err := svc.Create(r.Context(), current.UserID, req.Title, req.Author, req.Category, available)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, CreateBookResponse{
			Message: "Book created",
			Book:    *book,
		})
	}
}
