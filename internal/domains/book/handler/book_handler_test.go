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

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/catalog"
)

type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookService) ListOrByAuthor(ctx context.Context, author string) ([]book.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]book.Book), args.Error(1)
}

func (m *mockBookService) Search(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]book.Book), args.Error(1)
}

func (m *mockBookService) Create(ctx context.Context, attrs book.Attributes) (*book.Book, error) {
	args := m.Called(ctx, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookService) Update(ctx context.Context, id uuid.UUID, req book.UpdateRequest) (*book.Book, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) ResolveByISBN(ctx context.Context, isbn string) (*book.Book, bool, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*book.Book), args.Bool(1), args.Error(2)
}

func setupRouter(svc book.Service, cat catalog.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookHandler(svc, cat)

	r := gin.New()
	books := r.Group("/books")
	{
		books.GET("", h.List)
		books.GET("/byIsbn/:isbn", h.GetByISBN)
		books.GET("/:id", h.GetByID)
		books.PUT("/:id", h.Update)
	}
	return r
}

func TestGetByISBN_LocalHit(t *testing.T) {
	svc := new(mockBookService)
	cat := new(mockCatalogService)
	b := &book.Book{ID: uuid.New(), ISBN: "9780151446476"}
	cat.On("ResolveByISBN", mock.Anything, "9780151446476").Return(b, false, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books/byIsbn/9780151446476", nil)
	setupRouter(svc, cat).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetByISBN_Ingested(t *testing.T) {
	svc := new(mockBookService)
	cat := new(mockCatalogService)
	b := &book.Book{ID: uuid.New(), ISBN: "9780151446476"}
	cat.On("ResolveByISBN", mock.Anything, "9780151446476").Return(b, true, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books/byIsbn/9780151446476", nil)
	setupRouter(svc, cat).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetByISBN_UnknownISBN(t *testing.T) {
	svc := new(mockBookService)
	cat := new(mockCatalogService)
	cat.On("ResolveByISBN", mock.Anything, "0000000000000").Return(nil, false, catalog.ErrBookNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books/byIsbn/0000000000000", nil)
	setupRouter(svc, cat).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetByISBN_AttributeConflict(t *testing.T) {
	svc := new(mockBookService)
	cat := new(mockCatalogService)
	cat.On("ResolveByISBN", mock.Anything, "9780151446476").Return(nil, false, catalog.ErrAttributeConflict)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books/byIsbn/9780151446476", nil)
	setupRouter(svc, cat).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdate_BodyIDMismatch(t *testing.T) {
	svc := new(mockBookService)
	cat := new(mockCatalogService)
	pathID := uuid.New()
	svc.On("Update", mock.Anything, pathID, mock.Anything).Return(nil, book.ErrIDMismatch)

	body, _ := json.Marshal(map[string]interface{}{
		"id":     uuid.New().String(),
		"author": "Umberto Eco",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/books/%s", pathID), bytes.NewReader(body))
	setupRouter(svc, cat).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetByID_InvalidUUID(t *testing.T) {
	svc := new(mockBookService)
	cat := new(mockCatalogService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books/not-a-uuid", nil)
	setupRouter(svc, cat).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestList_ByAuthorQuery(t *testing.T) {
	svc := new(mockBookService)
	cat := new(mockCatalogService)
	svc.On("ListOrByAuthor", mock.Anything, "Umberto Eco").Return([]book.Book{{Author: "Umberto Eco"}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books?byAuthor=Umberto+Eco", nil)
	setupRouter(svc, cat).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
