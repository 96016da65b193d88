package user

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/book"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z ]+$`)

// User is a library patron. Library holds the user's owned books in
// insertion order; it is mutated only through AddBook / RemoveBook (plus
// the bulk ReplaceLibrary escape hatch for administrative reload).
type User struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	Username     string      `db:"username" json:"username"`
	Name         string      `db:"name" json:"name"`
	Birthdate    time.Time   `db:"birthdate" json:"birthdate"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Library      []book.Book `json:"library"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewUser validates the profile fields and returns a user with an empty
// library. passwordHash has already been derived by the caller.
func NewUser(username, name string, birthdate time.Time, passwordHash string) (*User, error) {
	u := &User{
		Username:     username,
		Name:         name,
		Birthdate:    birthdate,
		PasswordHash: passwordHash,
		Library:      []book.Book{},
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the profile fields; runs at construction and before
// every persist.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Username,
			validation.Required.Error("username must not be empty"),
		),
		validation.Field(&u.Name,
			validation.Required.Error("name must not be empty"),
			validation.Match(namePattern).Error("name must not have numbers or invalid characters"),
		),
		validation.Field(&u.Birthdate,
			validation.Required.Error("birthday must not be empty"),
			validation.By(birthdateInPast),
		),
	)
}

func birthdateInPast(value interface{}) error {
	t, _ := value.(time.Time)
	if t.IsZero() {
		return nil // Required already covers this
	}
	today := time.Now().Truncate(24 * time.Hour)
	if !t.Before(today) {
		return fmt.Errorf("birthday must be less than actual date")
	}
	return nil
}

// AddBook appends b to the library. A user may hold at most one book per
// distinct author: if any current entry has the same author (exact,
// case-sensitive match) the add is rejected and the library is unchanged.
func (u *User) AddBook(b *book.Book) error {
	if b == nil {
		return ErrNilBook
	}
	if u.ownsBookByAuthor(b.Author) {
		return ErrBookAlreadyOwned
	}
	u.Library = append(u.Library, *b)
	return nil
}

// RemoveBook removes the library entry whose author matches b's author.
// Removing an absent book is a deliberate no-op, asymmetric with AddBook's
// strict rejection.
func (u *User) RemoveBook(b *book.Book) {
	if b == nil {
		return
	}
	for i := range u.Library {
		if u.Library[i].Author == b.Author {
			u.Library = append(u.Library[:i], u.Library[i+1:]...)
			return
		}
	}
}

// ownsBookByAuthor is the matching predicate shared by AddBook and
// RemoveBook. Matching books by author rather than by id or isbn mirrors
// the historical behavior of this system; do not change it without
// product confirmation.
func (u *User) ownsBookByAuthor(author string) bool {
	for i := range u.Library {
		if u.Library[i].Author == author {
			return true
		}
	}
	return false
}

// ReplaceLibrary swaps the whole collection at once. Administrative
// reload only; normal flow goes through AddBook / RemoveBook.
func (u *User) ReplaceLibrary(books []book.Book) {
	u.Library = books
}
