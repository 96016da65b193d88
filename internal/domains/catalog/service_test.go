package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) FetchByISBN(ctx context.Context, isbn string) (Document, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Document), args.Error(1)
}

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookRepo) FindFirstByAuthor(ctx context.Context, author string) (*book.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookRepo) FindAll(ctx context.Context) ([]book.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]book.Book), args.Error(1)
}

func (m *mockBookRepo) Search(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]book.Book), args.Error(1)
}

func (m *mockBookRepo) Save(ctx context.Context, b *book.Book) (*book.Book, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testISBN = "9780151446476"

func validDocument(isbn string) Document {
	record := map[string]interface{}{
		"title":           "The Name of the Rose",
		"subtitle":        "A Novel",
		"publish_date":    "1983",
		"number_of_pages": 512,
		"publishers":      []map[string]string{{"name": "Harcourt"}, {"name": "Secker and Warburg"}},
		"authors":         []map[string]string{{"name": "Umberto Eco"}, {"name": "William Weaver"}},
	}
	raw, _ := json.Marshal(record)
	return Document{"ISBN:" + isbn: raw}
}

func TestResolveByISBN_LocalHitSkipsClient(t *testing.T) {
	client := new(mockClient)
	repo := new(mockBookRepo)
	local := &book.Book{ID: uuid.New(), ISBN: testISBN, Title: "The Name of the Rose"}
	repo.On("FindByISBN", mock.Anything, testISBN).Return(local, nil)

	svc := NewService(client, repo)
	got, ingested, err := svc.ResolveByISBN(context.Background(), testISBN)

	require.NoError(t, err)
	assert.False(t, ingested)
	assert.Equal(t, local, got)
	client.AssertNotCalled(t, "FetchByISBN", mock.Anything, mock.Anything)
}

func TestResolveByISBN_WrappedNotFoundStillFetches(t *testing.T) {
	client := new(mockClient)
	repo := new(mockBookRepo)
	repo.On("FindByISBN", mock.Anything, testISBN).
		Return(nil, fmt.Errorf("book lookup: %w", book.ErrBookNotFound))
	client.On("FetchByISBN", mock.Anything, testISBN).Return(Document{}, nil)

	svc := NewService(client, repo)
	_, _, err := svc.ResolveByISBN(context.Background(), testISBN)

	assert.ErrorIs(t, err, ErrBookNotFound)
	client.AssertExpectations(t)
}

func TestResolveByISBN_EmptyDocument(t *testing.T) {
	client := new(mockClient)
	repo := new(mockBookRepo)
	repo.On("FindByISBN", mock.Anything, testISBN).Return(nil, book.ErrBookNotFound)
	client.On("FetchByISBN", mock.Anything, testISBN).Return(Document{}, nil)

	svc := NewService(client, repo)
	_, _, err := svc.ResolveByISBN(context.Background(), testISBN)

	assert.ErrorIs(t, err, ErrBookNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestResolveByISBN_ClientError(t *testing.T) {
	client := new(mockClient)
	repo := new(mockBookRepo)
	repo.On("FindByISBN", mock.Anything, testISBN).Return(nil, book.ErrBookNotFound)
	client.On("FetchByISBN", mock.Anything, testISBN).Return(nil, fmt.Errorf("connection refused"))

	svc := NewService(client, repo)
	_, _, err := svc.ResolveByISBN(context.Background(), testISBN)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestResolveByISBN_MalformedRecords(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing title", func(r map[string]interface{}) { delete(r, "title") }},
		{"missing subtitle", func(r map[string]interface{}) { delete(r, "subtitle") }},
		{"missing publish_date", func(r map[string]interface{}) { delete(r, "publish_date") }},
		{"empty publishers", func(r map[string]interface{}) { r["publishers"] = []interface{}{} }},
		{"empty authors", func(r map[string]interface{}) { r["authors"] = []interface{}{} }},
		{"mistyped pages", func(r map[string]interface{}) { r["number_of_pages"] = "five hundred" }},
	}

	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			record := map[string]interface{}{
				"title":           "The Name of the Rose",
				"subtitle":        "A Novel",
				"publish_date":    "1983",
				"number_of_pages": 512,
				"publishers":      []map[string]string{{"name": "Harcourt"}},
				"authors":         []map[string]string{{"name": "Umberto Eco"}},
			}
			tc.mutate(record)
			raw, _ := json.Marshal(record)
			doc := Document{"ISBN:" + testISBN: raw}

			client := new(mockClient)
			repo := new(mockBookRepo)
			repo.On("FindByISBN", mock.Anything, testISBN).Return(nil, book.ErrBookNotFound)
			client.On("FetchByISBN", mock.Anything, testISBN).Return(doc, nil)

			svc := NewService(client, repo)
			_, _, err := svc.ResolveByISBN(context.Background(), testISBN)

			assert.ErrorIs(t, err, ErrAttributeConflict)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestResolveByISBN_WrongRecordKey(t *testing.T) {
	doc := validDocument("0000000000") // keyed under a different isbn

	client := new(mockClient)
	repo := new(mockBookRepo)
	repo.On("FindByISBN", mock.Anything, testISBN).Return(nil, book.ErrBookNotFound)
	client.On("FetchByISBN", mock.Anything, testISBN).Return(doc, nil)

	svc := NewService(client, repo)
	_, _, err := svc.ResolveByISBN(context.Background(), testISBN)

	assert.ErrorIs(t, err, ErrAttributeConflict)
}

func TestResolveByISBN_IngestsAndPersists(t *testing.T) {
	client := new(mockClient)
	repo := new(mockBookRepo)
	repo.On("FindByISBN", mock.Anything, testISBN).Return(nil, book.ErrBookNotFound)
	client.On("FetchByISBN", mock.Anything, testISBN).Return(validDocument(testISBN), nil)
	saved := &book.Book{
		ID:        uuid.New(),
		Author:    "Umberto Eco",
		Publisher: "Harcourt",
		Image:     "Has no image",
		Title:     "The Name of the Rose",
		Subtitle:  "A Novel",
		Year:      "1983",
		Pages:     512,
		ISBN:      testISBN,
	}
	repo.On("Save", mock.Anything, mock.MatchedBy(func(b *book.Book) bool {
		return b.ISBN == testISBN && b.Author == "Umberto Eco" && b.Publisher == "Harcourt"
	})).Return(saved, nil)

	svc := NewService(client, repo)
	got, ingested, err := svc.ResolveByISBN(context.Background(), testISBN)

	require.NoError(t, err)
	assert.True(t, ingested)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Umberto Eco", got.Author, "first author wins")
	assert.Equal(t, "Harcourt", got.Publisher, "first publisher wins")
	assert.Equal(t, "Has no image", got.Image)
	assert.Equal(t, "1983", got.Year)
	assert.Equal(t, testISBN, got.ISBN, "isbn comes from the request, not the response")
	repo.AssertExpectations(t)
}

func TestResolveByISBN_NonNumericPublishDate(t *testing.T) {
	record := map[string]interface{}{
		"title":           "The Name of the Rose",
		"subtitle":        "A Novel",
		"publish_date":    "May 1983",
		"number_of_pages": 512,
		"publishers":      []map[string]string{{"name": "Harcourt"}},
		"authors":         []map[string]string{{"name": "Umberto Eco"}},
	}
	raw, _ := json.Marshal(record)
	doc := Document{"ISBN:" + testISBN: raw}

	client := new(mockClient)
	repo := new(mockBookRepo)
	repo.On("FindByISBN", mock.Anything, testISBN).Return(nil, book.ErrBookNotFound)
	client.On("FetchByISBN", mock.Anything, testISBN).Return(doc, nil)

	svc := NewService(client, repo)
	_, _, err := svc.ResolveByISBN(context.Background(), testISBN)

	// publish_date is carried into the year field verbatim, so a
	// non-numeric value fails book validation
	assert.ErrorIs(t, err, ErrAttributeConflict)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
