package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"library-backend/internal/domains/book"
	"library-backend/pkg/logger"
)

// placeholderImage marks ingested books that arrived without cover data.
const placeholderImage = "Has no image"

// Record is the schema-checked intermediate shape an external record is
// normalized into before a Book is materialized from it.
type Record struct {
	ISBN       string
	Title      string
	Subtitle   string
	Year       string
	Pages      int
	Publishers []string
	Authors    []string
}

// wire types for the jscmd=data record shape

type namedEntry struct {
	Name string `json:"name"`
}

type bookData struct {
	Title         string       `json:"title"`
	Subtitle      string       `json:"subtitle"`
	PublishDate   string       `json:"publish_date"`
	NumberOfPages int          `json:"number_of_pages"`
	Publishers    []namedEntry `json:"publishers"`
	Authors       []namedEntry `json:"authors"`
}

// Service resolves an ISBN against the external catalog, producing a
// validated, persisted Book.
type Service interface {
	// ResolveByISBN returns the book and whether it was newly ingested.
	// A locally known ISBN short-circuits without any network call.
	ResolveByISBN(ctx context.Context, isbn string) (*book.Book, bool, error)
}

type service struct {
	client Client
	books  book.Repository
}

func NewService(client Client, books book.Repository) Service {
	return &service{
		client: client,
		books:  books,
	}
}

func (s *service) ResolveByISBN(ctx context.Context, isbn string) (*book.Book, bool, error) {
	// Lookup-local first.
	local, err := s.books.FindByISBN(ctx, isbn)
	if err == nil {
		return local, false, nil
	}
	if !errors.Is(err, book.ErrBookNotFound) {
		return nil, false, err
	}

	// Fetch-remote: one synchronous call, no retries.
	doc, err := s.client.FetchByISBN(ctx, isbn)
	if err != nil {
		return nil, false, err
	}

	// Empty-check: the external source has no record for this ISBN.
	if len(doc) == 0 {
		return nil, false, ErrBookNotFound
	}

	rec, err := normalize(doc, isbn)
	if err != nil {
		logger.Warn("catalog record normalization failed", err)
		return nil, false, ErrAttributeConflict
	}

	b, err := materialize(rec)
	if err != nil {
		logger.Warn("catalog record materialization failed", err)
		return nil, false, ErrAttributeConflict
	}

	saved, err := s.books.Save(ctx, b)
	if err != nil {
		return nil, false, err
	}
	return saved, true, nil
}

// normalize extracts the record keyed by "ISBN:<isbn>" and maps its
// loosely-typed nested structure into a Record. Every structural problem
// comes back as a plain error; the caller collapses them all into
// ErrAttributeConflict.
func normalize(doc Document, isbn string) (Record, error) {
	raw, ok := doc["ISBN:"+isbn]
	if !ok {
		return Record{}, fmt.Errorf("record key ISBN:%s missing", isbn)
	}

	var data bookData
	if err := json.Unmarshal(raw, &data); err != nil {
		return Record{}, fmt.Errorf("record decode: %w", err)
	}

	if data.Title == "" {
		return Record{}, fmt.Errorf("title missing")
	}
	if data.Subtitle == "" {
		return Record{}, fmt.Errorf("subtitle missing")
	}
	if data.PublishDate == "" {
		return Record{}, fmt.Errorf("publish_date missing")
	}
	if len(data.Publishers) == 0 {
		return Record{}, fmt.Errorf("publishers missing")
	}
	if len(data.Authors) == 0 {
		return Record{}, fmt.Errorf("authors missing")
	}

	publishers := make([]string, len(data.Publishers))
	for i, p := range data.Publishers {
		publishers[i] = p.Name
	}
	authors := make([]string, len(data.Authors))
	for i, a := range data.Authors {
		authors[i] = a.Name
	}

	return Record{
		ISBN:       isbn, // from input, never from the response
		Title:      data.Title,
		Subtitle:   data.Subtitle,
		Year:       data.PublishDate,
		Pages:      data.NumberOfPages,
		Publishers: publishers,
		Authors:    authors,
	}, nil
}

// materialize builds a Book from a Record. Multi-author and
// multi-publisher records are collapsed to their first entry.
func materialize(rec Record) (*book.Book, error) {
	return book.NewBook(book.Attributes{
		Author:    rec.Authors[0],
		Publisher: rec.Publishers[0],
		Image:     placeholderImage,
		Title:     rec.Title,
		Subtitle:  rec.Subtitle,
		Year:      rec.Year,
		Pages:     rec.Pages,
		ISBN:      rec.ISBN,
	})
}
