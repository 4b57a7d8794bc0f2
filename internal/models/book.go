package models

import (
	"time"

	"github.com/google/uuid"
)

// BookDB represents a book record in the database
type BookDB struct {
	BookID    uuid.UUID `json:"id" db:"book_id"`            // Primary key
	OwnerID   uuid.UUID `json:"-" db:"owner_id"`            // Owning user
	Title     string    `json:"title" db:"title"`           // Book title
	Author    string    `json:"author" db:"author"`         // Book author
	Category  string    `json:"category" db:"category"`     // Category label
	Available bool      `json:"available" db:"available"`   // Availability flag
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
