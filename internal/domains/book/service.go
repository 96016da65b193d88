package book

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for book CRUD. ISBN resolution
// against the external catalog lives in the catalog domain, not here.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// ListOrByAuthor returns all books when author is empty, otherwise a
	// single-element list with the first book by that author.
	ListOrByAuthor(ctx context.Context, author string) ([]Book, error)

	Search(ctx context.Context, filter Filter) ([]Book, error)
	Create(ctx context.Context, attrs Attributes) (*Book, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
