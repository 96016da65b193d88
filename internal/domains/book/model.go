package book

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var authorPattern = regexp.MustCompile(`^[a-zA-Z. ]+$`)

// Book is a single catalog entry. Instances are built through NewBook so
// an invalid book can never be held in memory, let alone persisted.
type Book struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Genre     string    `db:"genre" json:"genre,omitempty"`
	Author    string    `db:"author" json:"author"`
	Image     string    `db:"image" json:"image"`
	Title     string    `db:"title" json:"title"`
	Subtitle  string    `db:"subtitle" json:"subtitle"`
	Publisher string    `db:"publisher" json:"publisher"`
	Year      string    `db:"year" json:"year"`
	Pages     int       `db:"pages" json:"pages"`
	ISBN      string    `db:"isbn" json:"isbn"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Attributes carries the caller-supplied fields of a book. Genre is the
// only optional one.
type Attributes struct {
	Genre     string `json:"genre"`
	Author    string `json:"author"`
	Image     string `json:"image"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Publisher string `json:"publisher"`
	Year      string `json:"year"`
	Pages     int    `json:"pages"`
	ISBN      string `json:"isbn"`
}

// NewBook validates attrs and returns a book ready to persist.
func NewBook(attrs Attributes) (*Book, error) {
	b := &Book{
		Genre:     attrs.Genre,
		Author:    attrs.Author,
		Image:     attrs.Image,
		Title:     attrs.Title,
		Subtitle:  attrs.Subtitle,
		Publisher: attrs.Publisher,
		Year:      attrs.Year,
		Pages:     attrs.Pages,
		ISBN:      attrs.ISBN,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks every required field. Runs at construction and again
// right before every persist.
func (b *Book) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Author,
			validation.Required.Error("author must not be empty"),
			validation.Match(authorPattern).Error("author must not have numbers or invalid characters"),
		),
		validation.Field(&b.Image,
			validation.Required.Error("image must not be empty"),
		),
		validation.Field(&b.Title,
			validation.Required.Error("title must not be empty"),
		),
		validation.Field(&b.Subtitle,
			validation.Required.Error("subtitle must not be empty"),
		),
		validation.Field(&b.Publisher,
			validation.Required.Error("publisher must not be empty"),
		),
		validation.Field(&b.Year,
			validation.Required.Error("year must not be empty"),
			validation.By(yearNotInFuture),
		),
		validation.Field(&b.Pages,
			validation.Min(1).Error("pages must be greater than zero"),
		),
		validation.Field(&b.ISBN,
			validation.Required.Error("isbn must not be empty"),
		),
	)
}

func yearNotInFuture(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required already covers this
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("year must be a numeric string")
	}
	if year > time.Now().Year() {
		return fmt.Errorf("year must be less or equal than actual")
	}
	return nil
}
