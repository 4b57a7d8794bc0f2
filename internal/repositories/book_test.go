package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return sqlxDB, mock, func() { db.Close() }
}

func bookRows(bookID, ownerID uuid.UUID, title string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"book_id", "owner_id", "title", "author", "category", "available", "created_at", "updated_at",
	}).AddRow(bookID, ownerID, title, "Frank Herbert", "sci-fi", true, now, now)
}

func TestBookReadRepository_GetByID(t *testing.T) {
	db, mock, teardown := newMockDB(t)
	defer teardown()

	repo := NewBookReadRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	bookID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books").
			WithArgs(bookID, ownerID).
			WillReturnRows(bookRows(bookID, ownerID, "Dune"))

		book, err := repo.GetByID(ctx, ownerID, bookID)
		assert.NoError(t, err)
		assert.NotNil(t, book)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, ownerID, book.OwnerID)
	})

	t.Run("AnotherOwnersBookLooksMissing", func(t *testing.T) {
		strangerID := uuid.New()
		mock.ExpectQuery("SELECT (.+) FROM books").
			WithArgs(bookID, strangerID).
			WillReturnRows(sqlmock.NewRows([]string{"book_id"}))

		book, err := repo.GetByID(ctx, strangerID, bookID)
		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books").
			WithArgs(bookID, ownerID).
			WillReturnError(errors.New("connection refused"))

		book, err := repo.GetByID(ctx, ownerID, bookID)
		assert.Error(t, err)
		assert.Nil(t, book)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookReadRepository_ListByOwner(t *testing.T) {
	db, mock, teardown := newMockDB(t)
	defer teardown()

	repo := NewBookReadRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()

	t.Run("TwoBooks", func(t *testing.T) {
		rows := bookRows(uuid.New(), ownerID, "Dune").
			AddRow(uuid.New(), ownerID, "Hyperion", "Dan Simmons", "sci-fi", true, time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM books").
			WithArgs(ownerID).
			WillReturnRows(rows)

		books, err := repo.ListByOwner(ctx, ownerID)
		assert.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("EmptyIsNotNil", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM books").
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"book_id"}))

		books, err := repo.ListByOwner(ctx, ownerID)
		assert.NoError(t, err)
		assert.NotNil(t, books)
		assert.Len(t, books, 0)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Save(t *testing.T) {
	db, mock, teardown := newMockDB(t)
	defer teardown()

	repo := NewBookWriteRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()

	mock.ExpectQuery("INSERT INTO books").
		WithArgs(sqlmock.AnyArg(), ownerID, "Dune", "Frank Herbert", "sci-fi", true).
		WillReturnRows(bookRows(uuid.New(), ownerID, "Dune"))

	book, err := repo.Save(ctx, ownerID, "Dune", "Frank Herbert", "sci-fi", true)
	assert.NoError(t, err)
	assert.NotNil(t, book)
	assert.Equal(t, "Dune", book.Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Update(t *testing.T) {
	db, mock, teardown := newMockDB(t)
	defer teardown()

	repo := NewBookWriteRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	bookID := uuid.New()

	t.Run("TitleOnly", func(t *testing.T) {
		title := "Dune Messiah"
		mock.ExpectQuery("UPDATE books").
			WithArgs(bookID, ownerID, &title, nil, nil, nil).
			WillReturnRows(bookRows(bookID, ownerID, "Dune Messiah"))

		book, err := repo.Update(ctx, ownerID, bookID, &title, nil, nil, nil)
		assert.NoError(t, err)
		assert.NotNil(t, book)
		assert.Equal(t, "Dune Messiah", book.Title)
	})

	t.Run("MissingBook", func(t *testing.T) {
		title := "Dune Messiah"
		mock.ExpectQuery("UPDATE books").
			WithArgs(bookID, ownerID, &title, nil, nil, nil).
			WillReturnRows(sqlmock.NewRows([]string{"book_id"}))

		book, err := repo.Update(ctx, ownerID, bookID, &title, nil, nil, nil)
		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Delete(t *testing.T) {
	db, mock, teardown := newMockDB(t)
	defer teardown()

	repo := NewBookWriteRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	bookID := uuid.New()

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM books").
			WithArgs(bookID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.Delete(ctx, ownerID, bookID)
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("NothingToDelete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM books").
			WithArgs(bookID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.Delete(ctx, ownerID, bookID)
		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepositories_OwnerScoping(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	readRepo := NewBookReadRepository(db)
	writeRepo := NewBookWriteRepository(db)

	alice, err := users.Save(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	bob, err := users.Save(ctx, "bob", "bob@example.com", "hash")
	require.NoError(t, err)

	book, err := writeRepo.Save(ctx, alice.UserID, "Dune", "Frank Herbert", "sci-fi", true)
	require.NoError(t, err)

	t.Run("OwnerSeesTheBook", func(t *testing.T) {
		got, err := readRepo.GetByID(ctx, alice.UserID, book.BookID)
		assert.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("StrangerDoesNot", func(t *testing.T) {
		got, err := readRepo.GetByID(ctx, bob.UserID, book.BookID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("StrangerCannotUpdate", func(t *testing.T) {
		title := "Stolen"
		got, err := writeRepo.Update(ctx, bob.UserID, book.BookID, &title, nil, nil, nil)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("StrangerCannotDelete", func(t *testing.T) {
		deleted, err := writeRepo.Delete(ctx, bob.UserID, book.BookID)
		assert.NoError(t, err)
		assert.False(t, deleted)

		still, err := readRepo.GetByID(ctx, alice.UserID, book.BookID)
		assert.NoError(t, err)
		assert.NotNil(t, still)
	})
}
