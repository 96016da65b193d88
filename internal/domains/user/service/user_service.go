package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

type userService struct {
	users      user.Repository
	books      book.Repository
	jwtManager *jwt.Manager
}

func NewUserService(users user.Repository, books book.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		users:      users,
		books:      books,
		jwtManager: jwtManager,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) ListOrByUsername(ctx context.Context, username string) ([]user.User, error) {
	if username == "" {
		return s.users.FindAll(ctx)
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return []user.User{*u}, nil
}

func (s *userService) Search(ctx context.Context, filter user.Filter) ([]user.User, error) {
	return s.users.Search(ctx, filter)
}

func (s *userService) Create(ctx context.Context, req user.CreateRequest) (*user.User, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, user.ErrUsernameTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(req.Username, req.Name, req.ParsedBirthdate(), string(hash))
	if err != nil {
		return nil, err
	}

	saved, err := s.users.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	logger.Info("user created", map[string]interface{}{
		"user_id":  saved.ID.String(),
		"username": saved.Username,
	})
	return saved, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req user.UpdateRequest) (*user.User, error) {
	if req.ID != id {
		return nil, user.ErrIDMismatch
	}

	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != existing.Username {
		if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
			return nil, user.ErrUsernameTaken
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
	}

	// profile update keeps the password and the library as they are
	updated, err := user.NewUser(req.Username, req.Name, req.ParsedBirthdate(), existing.PasswordHash)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Library = existing.Library

	return s.users.Save(ctx, updated)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	return s.users.DeleteByID(ctx, id)
}

func (s *userService) AddBook(ctx context.Context, userID, bookID uuid.UUID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := u.AddBook(b); err != nil {
		return nil, err
	}
	return s.users.Save(ctx, u)
}

func (s *userService) RemoveBook(ctx context.Context, userID uuid.UUID, author string) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.RemoveBook(&book.Book{Author: author})
	return s.users.Save(ctx, u)
}

func (s *userService) ReplaceLibrary(ctx context.Context, userID uuid.UUID, bookIDs []uuid.UUID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	library := make([]book.Book, 0, len(bookIDs))
	for _, id := range bookIDs {
		b, err := s.books.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		library = append(library, *b)
	}

	u.ReplaceLibrary(library)
	return s.users.Save(ctx, u)
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Username)
	if err != nil {
		return nil, err
	}

	logger.Info("user logged in", map[string]interface{}{
		"user_id": u.ID.String(),
	})
	return &user.LoginResponse{AccessToken: token, User: u}, nil
}
