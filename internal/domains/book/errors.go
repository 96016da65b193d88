package book

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrIDMismatch   = errors.New("book id mismatched")

	// ErrDuplicateISBN surfaces the catalog-level unique constraint on isbn.
	ErrDuplicateISBN = errors.New("book with this isbn already exists")
)

// ToErrorCode converts a domain error to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrIDMismatch):
		return "ID_MISMATCH"
	case errors.Is(err, ErrDuplicateISBN):
		return "DUPLICATE_ISBN"
	case isValidationError(err):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts a domain error to an HTTP status code.
// Store-level uniqueness violations map to 400 like the other request
// shape problems, not 409.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return 404
	case errors.Is(err, ErrIDMismatch), errors.Is(err, ErrDuplicateISBN):
		return 400
	case isValidationError(err):
		return 400
	default:
		return 500
	}
}

func isValidationError(err error) bool {
	var vErrs validation.Errors
	return errors.As(err, &vErrs)
}
