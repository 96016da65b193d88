package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
)

type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	if id == uuid.Nil {
		return nil, book.ErrBookNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *bookService) ListOrByAuthor(ctx context.Context, author string) ([]book.Book, error) {
	if author == "" {
		return s.repo.FindAll(ctx)
	}

	b, err := s.repo.FindFirstByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return []book.Book{*b}, nil
}

func (s *bookService) Search(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	return s.repo.Search(ctx, filter)
}

func (s *bookService) Create(ctx context.Context, attrs book.Attributes) (*book.Book, error) {
	b, err := book.NewBook(attrs)
	if err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, b)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req book.UpdateRequest) (*book.Book, error) {
	if req.ID != id {
		return nil, book.ErrIDMismatch
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	b, err := book.NewBook(req.Attributes)
	if err != nil {
		return nil, err
	}
	b.ID = id

	return s.repo.Save(ctx, b)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}
