package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/library-catalog/internal/logger"
	"github.com/sbilibin2017/library-catalog/internal/models"
)

// Every book query is parameterized by the owner id, so a book that
// belongs to someone else is indistinguishable from one that does not
// exist.

type BookReadRepository struct {
	db *sqlx.DB
}

func NewBookReadRepository(db *sqlx.DB) *BookReadRepository {
	return &BookReadRepository{db: db}
}

// GetByID returns the owner's book with the given id, or nil if the
// owner has no such book.
func (r *BookReadRepository) GetByID(ctx context.Context, ownerID, bookID uuid.UUID) (*models.BookDB, error) {
	const query = `
		SELECT book_id, owner_id, title, author, category, available, created_at, updated_at
		FROM books
		WHERE book_id = $1 AND owner_id = $2
	`

	var book models.BookDB
	err := r.db.GetContext(ctx, &book, query, bookID, ownerID)

	logger.Log.Infow("book read",
		"query", strings.Join(strings.Fields(query), " "),
		"book_id", bookID,
		"owner_id", ownerID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// ListByOwner returns all books of an owner, newest first.
func (r *BookReadRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.BookDB, error) {
	const query = `
		SELECT book_id, owner_id, title, author, category, available, created_at, updated_at
		FROM books
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	books := []models.BookDB{}
	err := r.db.SelectContext(ctx, &books, query, ownerID)

	logger.Log.Infow("book list",
		"query", strings.Join(strings.Fields(query), " "),
		"owner_id", ownerID,
		"count", len(books),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return books, nil
}

type BookWriteRepository struct {
	db *sqlx.DB
}

func NewBookWriteRepository(db *sqlx.DB) *BookWriteRepository {
	return &BookWriteRepository{db: db}
}

// Save inserts a new book for the owner and returns the created record.
func (r *BookWriteRepository) Save(ctx context.Context, ownerID uuid.UUID, title, author, category string, available bool) (*models.BookDB, error) {
	const query = `
		INSERT INTO books (book_id, owner_id, title, author, category, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING book_id, owner_id, title, author, category, available, created_at, updated_at
	`

	var book models.BookDB
	err := r.db.GetContext(ctx, &book, query, uuid.New(), ownerID, title, author, category, available)

	logger.Log.Infow("book insert",
		"query", strings.Join(strings.Fields(query), " "),
		"owner_id", ownerID,
		"title", title,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &book, nil
}

// Update overwrites the provided fields of the owner's book. Nil fields
// keep their current value. Returns nil if the owner has no such book.
func (r *BookWriteRepository) Update(ctx context.Context, ownerID, bookID uuid.UUID, title, author, category *string, available *bool) (*models.BookDB, error) {
	const query = `
		UPDATE books
		SET title = COALESCE($3, title),
		    author = COALESCE($4, author),
		    category = COALESCE($5, category),
		    available = COALESCE($6, available),
		    updated_at = NOW()
		WHERE book_id = $1 AND owner_id = $2
		RETURNING book_id, owner_id, title, author, category, available, created_at, updated_at
	`

	var book models.BookDB
	err := r.db.GetContext(ctx, &book, query, bookID, ownerID, title, author, category, available)

	logger.Log.Infow("book update",
		"query", strings.Join(strings.Fields(query), " "),
		"book_id", bookID,
		"owner_id", ownerID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// Delete removes the owner's book. Reports whether a row was deleted.
func (r *BookWriteRepository) Delete(ctx context.Context, ownerID, bookID uuid.UUID) (bool, error) {
	const query = `
		DELETE FROM books
		WHERE book_id = $1 AND owner_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, bookID, ownerID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("book delete",
		"query", strings.Join(strings.Fields(query), " "),
		"book_id", bookID,
		"owner_id", ownerID,
		"rows", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
