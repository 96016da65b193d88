package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows user searches; zero values are ignored.
type Filter struct {
	BirthdateFrom *time.Time
	BirthdateTo   *time.Time
	Name          string // case-insensitive substring match
}

// Repository is the data access contract for users. Implementations load
// and store the library collection together with the user row, preserving
// insertion order.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Search(ctx context.Context, filter Filter) ([]User, error)

	// Save inserts when u.ID is nil, updates otherwise. The library link
	// rows are replaced to match u.Library exactly.
	Save(ctx context.Context, u *User) (*User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
