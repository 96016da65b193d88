package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// CreateRequest is the payload for POST /users.
type CreateRequest struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"` // YYYY-MM-DD
	Password  string `json:"password"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Birthdate,
			validation.Required.Error("birthdate is required"),
			validation.Date(dateLayout).Error("birthdate must be YYYY-MM-DD"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
	)
}

// ParsedBirthdate must be called after Validate.
func (r CreateRequest) ParsedBirthdate() time.Time {
	t, _ := time.Parse(dateLayout, r.Birthdate)
	return t
}

// UpdateRequest is the payload for PUT /users/:id. The password and the
// library are not touched by profile updates.
type UpdateRequest struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Birthdate string    `json:"birthdate"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Birthdate,
			validation.Required.Error("birthdate is required"),
			validation.Date(dateLayout).Error("birthdate must be YYYY-MM-DD"),
		),
	)
}

func (r UpdateRequest) ParsedBirthdate() time.Time {
	t, _ := time.Parse(dateLayout, r.Birthdate)
	return t
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// AddBookRequest is the payload for POST /users/:id/addBook. The book
// must already exist in the catalog.
type AddBookRequest struct {
	BookID uuid.UUID `json:"id"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book id is required")),
	)
}

// RemoveBookRequest is the payload for DELETE /users/:id/removeBook.
// Removal matches by author, like the ownership check.
type RemoveBookRequest struct {
	Author string `json:"author"`
}

func (r RemoveBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Author, validation.Required.Error("author is required")),
	)
}

// ReplaceLibraryRequest is the bulk reload payload: the full new
// collection as book ids, in the order they should appear.
type ReplaceLibraryRequest struct {
	BookIDs []uuid.UUID `json:"book_ids"`
}
