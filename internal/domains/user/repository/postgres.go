package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

const userColumns = `id, username, name, birthdate, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Name,
		&u.Birthdate,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLibrary(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, err
	}
	if err := r.loadLibrary(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	return r.queryUsers(ctx, query)
}

func (r *postgresRepository) Search(ctx context.Context, filter user.Filter) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.BirthdateFrom != nil {
		query += fmt.Sprintf(" AND birthdate >= $%d", argIndex)
		args = append(args, *filter.BirthdateFrom)
		argIndex++
	}
	if filter.BirthdateTo != nil {
		query += fmt.Sprintf(" AND birthdate <= $%d", argIndex)
		args = append(args, *filter.BirthdateTo)
		argIndex++
	}
	if filter.Name != "" {
		query += fmt.Sprintf(" AND LOWER(name) LIKE LOWER($%d)", argIndex)
		args = append(args, "%"+filter.Name+"%")
		argIndex++
	}
	query += " ORDER BY created_at"

	return r.queryUsers(ctx, query, args...)
}

func (r *postgresRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("user query failed: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Name,
			&u.Birthdate,
			&u.PasswordHash,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("user scan failed: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user rows error: %w", err)
	}

	for i := range users {
		if err := r.loadLibrary(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// loadLibrary fills u.Library in insertion order (position column).
func (r *postgresRepository) loadLibrary(ctx context.Context, u *user.User) error {
	query := `
		SELECT b.id, b.genre, b.author, b.image, b.title, b.subtitle,
		       b.publisher, b.year, b.pages, b.isbn, b.created_at, b.updated_at
		FROM user_books ub
		JOIN books b ON b.id = ub.book_id
		WHERE ub.user_id = $1
		ORDER BY ub.position
	`
	rows, err := r.pool.Query(ctx, query, u.ID)
	if err != nil {
		return fmt.Errorf("library query failed: %w", err)
	}
	defer rows.Close()

	library := []book.Book{}
	for rows.Next() {
		var b book.Book
		err := rows.Scan(
			&b.ID,
			&b.Genre,
			&b.Author,
			&b.Image,
			&b.Title,
			&b.Subtitle,
			&b.Publisher,
			&b.Year,
			&b.Pages,
			&b.ISBN,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("library scan failed: %w", err)
		}
		library = append(library, b)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("library rows error: %w", err)
	}

	u.Library = library
	return nil
}

// Save writes the user row and replaces the library link rows so the
// stored collection matches u.Library exactly, in order. Both happen in
// one transaction.
func (r *postgresRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	var row pgx.Row
	if u.ID == uuid.Nil {
		query := `
			INSERT INTO users (username, name, birthdate, password_hash)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + userColumns
		row = tx.QueryRow(ctx, query, u.Username, u.Name, u.Birthdate, u.PasswordHash)
	} else {
		query := `
			UPDATE users
			SET username = $2, name = $3, birthdate = $4, password_hash = $5, updated_at = now()
			WHERE id = $1
			RETURNING ` + userColumns
		row = tx.QueryRow(ctx, query, u.ID, u.Username, u.Name, u.Birthdate, u.PasswordHash)
	}

	saved, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, user.ErrUsernameTaken
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_books WHERE user_id = $1`, saved.ID); err != nil {
		return nil, fmt.Errorf("library clear failed: %w", err)
	}
	for i := range u.Library {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_books (user_id, book_id, position) VALUES ($1, $2, $3)`,
			saved.ID, u.Library[i].ID, i)
		if err != nil {
			return nil, fmt.Errorf("library link failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	saved.Library = u.Library
	return saved, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	// user_books rows go with the user via ON DELETE CASCADE
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
