package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) ListOrByUsername(ctx context.Context, username string) ([]user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *mockUserService) Search(ctx context.Context, filter user.Filter) ([]user.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *mockUserService) Create(ctx context.Context, req user.CreateRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, id uuid.UUID, req user.UpdateRequest) (*user.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserService) AddBook(ctx context.Context, userID, bookID uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) RemoveBook(ctx context.Context, userID uuid.UUID, author string) (*user.User, error) {
	args := m.Called(ctx, userID, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) ReplaceLibrary(ctx context.Context, userID uuid.UUID, bookIDs []uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, userID, bookIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.LoginResponse), args.Error(1)
}

func setupRouter(svc user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(svc)

	r := gin.New()
	users := r.Group("/users")
	{
		users.POST("/:id/addBook", h.AddBook)
		users.DELETE("/:id/removeBook", h.RemoveBook)
		users.PUT("/:id/library", h.ReplaceLibrary)
	}
	return r
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestAddBook_UnknownBookIs404(t *testing.T) {
	svc := new(mockUserService)
	userID := uuid.New()
	bookID := uuid.New()
	svc.On("AddBook", mock.Anything, userID, bookID).Return(nil, book.ErrBookNotFound)

	body, _ := json.Marshal(map[string]string{"id": bookID.String()})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/users/%s/addBook", userID), bytes.NewReader(body))
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BOOK_NOT_FOUND", decodeErrorCode(t, w))
}

func TestAddBook_AlreadyOwnedIs400(t *testing.T) {
	svc := new(mockUserService)
	userID := uuid.New()
	bookID := uuid.New()
	svc.On("AddBook", mock.Anything, userID, bookID).Return(nil, user.ErrBookAlreadyOwned)

	body, _ := json.Marshal(map[string]string{"id": bookID.String()})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/users/%s/addBook", userID), bytes.NewReader(body))
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BOOK_ALREADY_OWNED", decodeErrorCode(t, w))
}

func TestReplaceLibrary_UnknownBookIs404(t *testing.T) {
	svc := new(mockUserService)
	userID := uuid.New()
	bookID := uuid.New()
	svc.On("ReplaceLibrary", mock.Anything, userID, []uuid.UUID{bookID}).Return(nil, book.ErrBookNotFound)

	body, _ := json.Marshal(map[string]interface{}{"book_ids": []string{bookID.String()}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/users/%s/library", userID), bytes.NewReader(body))
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BOOK_NOT_FOUND", decodeErrorCode(t, w))
}

func TestRemoveBook_AbsentIs200(t *testing.T) {
	svc := new(mockUserService)
	userID := uuid.New()
	u := &user.User{ID: userID, Username: "paolo"}
	svc.On("RemoveBook", mock.Anything, userID, "Umberto Eco").Return(u, nil)

	body, _ := json.Marshal(map[string]string{"author": "Umberto Eco"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/users/%s/removeBook", userID), bytes.NewReader(body))
	setupRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
