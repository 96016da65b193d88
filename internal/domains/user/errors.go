package user

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/domains/book"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrIDMismatch    = errors.New("user id mismatched")
	ErrUsernameTaken = errors.New("the username is already taken")

	// Library membership
	ErrNilBook          = errors.New("book must not be null")
	ErrBookAlreadyOwned = errors.New("book is already in the user collection")

	// Auth
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ToErrorCode also covers book.ErrBookNotFound: the library operations
// look up catalog books and surface their absence through this mapper.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "USER_NOT_FOUND"
	case errors.Is(err, book.ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrIDMismatch):
		return "ID_MISMATCH"
	case errors.Is(err, ErrUsernameTaken):
		return "USERNAME_TAKEN"
	case errors.Is(err, ErrNilBook):
		return "INVALID_BOOK"
	case errors.Is(err, ErrBookAlreadyOwned):
		return "BOOK_ALREADY_OWNED"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case isValidationError(err):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus maps domain errors to status codes. ErrBookAlreadyOwned is
// deliberately 400, not 403: it is a request the caller can correct, not a
// permission problem.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, book.ErrBookNotFound):
		return 404
	case errors.Is(err, ErrIDMismatch), errors.Is(err, ErrNilBook), errors.Is(err, ErrBookAlreadyOwned):
		return 400
	case errors.Is(err, ErrUsernameTaken):
		return 409
	case errors.Is(err, ErrInvalidCredentials):
		return 401
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
