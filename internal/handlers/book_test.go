package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/middlewares"
	"github.com/sbilibin2017/library-catalog/internal/models"
	"github.com/sbilibin2017/library-catalog/internal/services"
	"github.com/stretchr/testify/assert"
)

// --- Fake book service ---
type fakeBookService struct {
	book  *models.BookDB
	books []models.BookDB
	err   error

	gotOwnerID uuid.UUID
	gotBookID  uuid.UUID
}

func (f *fakeBookService) Create(ctx context.Context, ownerID uuid.UUID, title, author, category string, available bool) (*models.BookDB, error) {
	f.gotOwnerID = ownerID
	return f.book, f.err
}

func (f *fakeBookService) List(ctx context.Context, ownerID uuid.UUID) ([]models.BookDB, error) {
	f.gotOwnerID = ownerID
	return f.books, f.err
}

func (f *fakeBookService) Get(ctx context.Context, ownerID, bookID uuid.UUID) (*models.BookDB, error) {
	f.gotOwnerID, f.gotBookID = ownerID, bookID
	return f.book, f.err
}

func (f *fakeBookService) Update(ctx context.Context, ownerID, bookID uuid.UUID, title, author, category *string, available *bool) (*models.BookDB, error) {
	f.gotOwnerID, f.gotBookID = ownerID, bookID
	return f.book, f.err
}

func (f *fakeBookService) Delete(ctx context.Context, ownerID, bookID uuid.UUID) error {
	f.gotOwnerID, f.gotBookID = ownerID, bookID
	return f.err
}

func bookRouter(svc *fakeBookService, user *models.UserDB) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middlewares.SetUserToContext(req.Context(), user)))
		})
	})
	r.Post("/api/books", NewCreateBookHandler(svc))
	r.Get("/api/books", NewListBooksHandler(svc))
	r.Get("/api/books/{id}", NewGetBookHandler(svc))
	r.Put("/api/books/{id}", NewUpdateBookHandler(svc))
	r.Delete("/api/books/{id}", NewDeleteBookHandler(svc))
	return r
}

func TestCreateBookHandler(t *testing.T) {
	owner := &models.UserDB{UserID: uuid.New()}
	book := &models.BookDB{BookID: uuid.New(), OwnerID: owner.UserID, Title: "Dune", Author: "Frank Herbert", Category: "sci-fi", Available: true}

	t.Run("success", func(t *testing.T) {
		svc := &fakeBookService{book: book}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books",
			bytes.NewBufferString(`{"title":"Dune","author":"Frank Herbert","category":"sci-fi"}`))

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, owner.UserID, svc.gotOwnerID)

		var resp CreateBookResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Book created", resp.Message)
		assert.Equal(t, "Dune", resp.Book.Title)
		assert.True(t, resp.Book.Available)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeBookService{book: book}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books",
			bytes.NewBufferString(`{"title":"D","author":"","category":""}`))

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		svc := &fakeBookService{book: book}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/books",
			bytes.NewBufferString(`{"title":"Dune","author":"Frank Herbert","category":"sci-fi"}`))

		bookRouter(svc, nil).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestListBooksHandler(t *testing.T) {
	owner := &models.UserDB{UserID: uuid.New()}
	books := []models.BookDB{
		{BookID: uuid.New(), OwnerID: owner.UserID, Title: "Dune"},
		{BookID: uuid.New(), OwnerID: owner.UserID, Title: "Hyperion"},
	}

	svc := &fakeBookService{books: books}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)

	bookRouter(svc, owner).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, owner.UserID, svc.gotOwnerID)

	var resp ListBooksResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Books, 2)
}

func TestGetBookHandler(t *testing.T) {
	owner := &models.UserDB{UserID: uuid.New()}
	book := &models.BookDB{BookID: uuid.New(), OwnerID: owner.UserID, Title: "Dune"}

	t.Run("success", func(t *testing.T) {
		svc := &fakeBookService{book: book}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/"+book.BookID.String(), nil)

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, book.BookID, svc.gotBookID)
		assert.Equal(t, owner.UserID, svc.gotOwnerID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeBookService{err: services.ErrBookNotFound}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/"+uuid.NewString(), nil)

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id is a 404", func(t *testing.T) {
		svc := &fakeBookService{book: book}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books/not-a-uuid", nil)

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateBookHandler(t *testing.T) {
	owner := &models.UserDB{UserID: uuid.New()}
	book := &models.BookDB{BookID: uuid.New(), OwnerID: owner.UserID, Title: "Dune Messiah"}

	t.Run("success", func(t *testing.T) {
		svc := &fakeBookService{book: book}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/books/"+book.BookID.String(),
			bytes.NewBufferString(`{"title":"Dune Messiah"}`))

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp UpdateBookResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Book updated", resp.Message)
	})

	t.Run("empty update", func(t *testing.T) {
		svc := &fakeBookService{err: services.ErrEmptyUpdate}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/books/"+book.BookID.String(),
			bytes.NewBufferString(`{}`))

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeBookService{err: services.ErrBookNotFound}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/books/"+book.BookID.String(),
			bytes.NewBufferString(`{"title":"Dune Messiah"}`))

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteBookHandler(t *testing.T) {
	owner := &models.UserDB{UserID: uuid.New()}
	bookID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &fakeBookService{}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/books/"+bookID.String(), nil)

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, bookID, svc.gotBookID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeBookService{err: services.ErrBookNotFound}
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/books/"+bookID.String(), nil)

		bookRouter(svc, owner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
