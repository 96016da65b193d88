package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for users, including the library
// membership operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// ListOrByUsername returns all users when username is empty, otherwise
	// a single-element list with that user.
	ListOrByUsername(ctx context.Context, username string) ([]User, error)

	Search(ctx context.Context, filter Filter) ([]User, error)
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Library membership. AddBook links an existing catalog book into the
	// user's library; RemoveBook unlinks by author match and never fails
	// on an absent book.
	AddBook(ctx context.Context, userID, bookID uuid.UUID) (*User, error)
	RemoveBook(ctx context.Context, userID uuid.UUID, author string) (*User, error)
	ReplaceLibrary(ctx context.Context, userID uuid.UUID, bookIDs []uuid.UUID) (*User, error)

	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}
