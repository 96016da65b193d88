package user

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/domains/book"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrUserNotFound, 404, "USER_NOT_FOUND"},
		{book.ErrBookNotFound, 404, "BOOK_NOT_FOUND"},
		{ErrIDMismatch, 400, "ID_MISMATCH"},
		{ErrNilBook, 400, "INVALID_BOOK"},
		{ErrBookAlreadyOwned, 400, "BOOK_ALREADY_OWNED"},
		{ErrUsernameTaken, 409, "USERNAME_TAKEN"},
		{ErrInvalidCredentials, 401, "INVALID_CREDENTIALS"},
		{fmt.Errorf("connection reset"), 500, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.status, ToHTTPStatus(tc.err))
			assert.Equal(t, tc.code, ToErrorCode(tc.err))
		})
	}
}

func TestToHTTPStatus_WrappedBookNotFound(t *testing.T) {
	err := fmt.Errorf("loading book: %w", book.ErrBookNotFound)

	assert.Equal(t, 404, ToHTTPStatus(err))
	assert.Equal(t, "BOOK_NOT_FOUND", ToErrorCode(err))
}
