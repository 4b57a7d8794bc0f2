package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/models"
)

// ErrBookNotFound covers both a nonexistent book id and a book owned by
// another user. The two cases are deliberately indistinguishable.
var ErrBookNotFound = errors.New("book not found")

// BookReader defines read operations for books, always owner-scoped.
type BookReader interface {
	GetByID(ctx context.Context, ownerID, bookID uuid.UUID) (*models.BookDB, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.BookDB, error)
}

// BookWriter defines write operations for books, always owner-scoped.
type BookWriter interface {
	Save(ctx context.Context, ownerID uuid.UUID, title, author, category string, available bool) (*models.BookDB, error)
	Update(ctx context.Context, ownerID, bookID uuid.UUID, title, author, category *string, available *bool) (*models.BookDB, error)
	Delete(ctx context.Context, ownerID, bookID uuid.UUID) (bool, error)
}

// BookService handles owner-scoped book CRUD.
type BookService struct {
	reader BookReader
	writer BookWriter
}

// NewBookService creates a new BookService instance.
func NewBookService(reader BookReader, writer BookWriter) *BookService {
	return &BookService{
		reader: reader,
		writer: writer,
	}
}

// Create adds a book to the owner's catalog.
func (svc *BookService) Create(ctx context.Context, ownerID uuid.UUID, title, author, category string, available bool) (*models.BookDB, error) {
	book, err := svc.writer.Save(ctx, ownerID, title, author, category, available)
	if err != nil {
		logger.Log.Errorw("failed to save book", "owner_id", ownerID, "err", err)
		return nil, err
	}
	return book, nil
}

// List returns the owner's books, newest first.
func (svc *BookService) List(ctx context.Context, ownerID uuid.UUID) ([]models.BookDB, error) {
	books, err := svc.reader.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.Log.Errorw("failed to list books", "owner_id", ownerID, "err", err)
		return nil, err
	}
	return books, nil
}

// Get returns one of the owner's books.
func (svc *BookService) Get(ctx context.Context, ownerID, bookID uuid.UUID) (*models.BookDB, error) {
	book, err := svc.reader.GetByID(ctx, ownerID, bookID)
	if err != nil {
		logger.Log.Errorw("failed to get book", "book_id", bookID, "err", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// Update changes the provided fields of one of the owner's books. At
// least one field must be provided.
func (svc *BookService) Update(ctx context.Context, ownerID, bookID uuid.UUID, title, author, category *string, available *bool) (*models.BookDB, error) {
	if title == nil && author == nil && category == nil && available == nil {
		return nil, ErrEmptyUpdate
	}

	book, err := svc.writer.Update(ctx, ownerID, bookID, title, author, category, available)
	if err != nil {
		logger.Log.Errorw("failed to update book", "book_id", bookID, "err", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// Delete removes one of the owner's books.
func (svc *BookService) Delete(ctx context.Context, ownerID, bookID uuid.UUID) error {
	deleted, err := svc.writer.Delete(ctx, ownerID, bookID)
	if err != nil {
		logger.Log.Errorw("failed to delete book", "book_id", bookID, "err", err)
		return err
	}
	if !deleted {
		return ErrBookNotFound
	}
	return nil
}
