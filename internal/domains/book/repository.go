package book

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows FindAll-style listings; empty fields are ignored.
type Filter struct {
	Publisher string
	Genre     string
	Year      string
}

// Repository is the data access contract for books. The concrete
// implementation lives in repository/postgres.go.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)
	FindByISBN(ctx context.Context, isbn string) (*Book, error)
	FindFirstByAuthor(ctx context.Context, author string) (*Book, error)
	FindAll(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, filter Filter) ([]Book, error)

	// Save inserts when b.ID is nil, updates otherwise.
	Save(ctx context.Context, b *Book) (*Book, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
