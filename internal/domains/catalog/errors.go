package catalog

import "errors"

var (
	// ErrBookNotFound means the external source has no record for the ISBN.
	ErrBookNotFound = errors.New("book not found")

	// ErrAttributeConflict means the external record did not match the
	// expected shape: a missing key, a mistyped value, an empty author or
	// publisher list, or a field that fails book validation. Callers never
	// see the underlying detail, only this kind.
	ErrAttributeConflict = errors.New("an attribute has a conflict")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrAttributeConflict):
		return "ATTRIBUTE_CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return 404
	case errors.Is(err, ErrAttributeConflict):
		return 409
	default:
		return 500
	}
}
