package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const cacheTTL = 10 * time.Minute

// postgresRepository implements book.Repository with cache-aside reads
// on the two hot lookups (by id, by isbn).
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const bookColumns = `id, genre, author, image, title, subtitle, publisher, year, pages, isbn, created_at, updated_at`

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	cacheKey := fmt.Sprintf("book:%s", id)

	var cached book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, b, cacheTTL); err != nil {
		logger.Warn("book cache set failed", err)
	}
	return b, nil
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	cacheKey := fmt.Sprintf("book:isbn:%s", isbn)

	var cached book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`
	b, err := scanBook(r.pool.QueryRow(ctx, query, isbn))
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, b, cacheTTL); err != nil {
		logger.Warn("book cache set failed", err)
	}
	return b, nil
}

func (r *postgresRepository) FindFirstByAuthor(ctx context.Context, author string) (*book.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE author = $1 ORDER BY created_at LIMIT 1`
	return scanBook(r.pool.QueryRow(ctx, query, author))
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]book.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY created_at`
	return r.queryBooks(ctx, query)
}

// Search builds the WHERE clause dynamically from the non-empty filter
// fields.
func (r *postgresRepository) Search(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.Publisher != "" {
		query += fmt.Sprintf(" AND publisher = $%d", argIndex)
		args = append(args, filter.Publisher)
		argIndex++
	}
	if filter.Genre != "" {
		query += fmt.Sprintf(" AND genre = $%d", argIndex)
		args = append(args, filter.Genre)
		argIndex++
	}
	if filter.Year != "" {
		query += fmt.Sprintf(" AND year = $%d", argIndex)
		args = append(args, filter.Year)
		argIndex++
	}
	query += " ORDER BY created_at"

	return r.queryBooks(ctx, query, args...)
}

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("book query failed: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
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
			return nil, fmt.Errorf("book scan failed: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("book rows error: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Save(ctx context.Context, b *book.Book) (*book.Book, error) {
	if b.ID == uuid.Nil {
		return r.insert(ctx, b)
	}
	return r.update(ctx, b)
}

func (r *postgresRepository) insert(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
		INSERT INTO books (genre, author, image, title, subtitle, publisher, year, pages, isbn)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + bookColumns
	row := r.pool.QueryRow(ctx, query,
		b.Genre, b.Author, b.Image, b.Title, b.Subtitle, b.Publisher, b.Year, b.Pages, b.ISBN)

	saved, err := scanBook(row)
	if err != nil {
		return nil, mapSaveError(err)
	}

	r.invalidate(ctx, saved)
	return saved, nil
}

func (r *postgresRepository) update(ctx context.Context, b *book.Book) (*book.Book, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// the pre-update isbn must be evicted too, or a changed isbn leaves a
	// stale book:isbn:<old> entry serving a record that no longer exists
	var oldISBN string
	if err := tx.QueryRow(ctx, `SELECT isbn FROM books WHERE id = $1 FOR UPDATE`, b.ID).Scan(&oldISBN); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, err
	}

	query := `
		UPDATE books
		SET genre = $2, author = $3, image = $4, title = $5, subtitle = $6,
		    publisher = $7, year = $8, pages = $9, isbn = $10, updated_at = now()
		WHERE id = $1
		RETURNING ` + bookColumns
	saved, err := scanBook(tx.QueryRow(ctx, query,
		b.ID, b.Genre, b.Author, b.Image, b.Title, b.Subtitle, b.Publisher, b.Year, b.Pages, b.ISBN))
	if err != nil {
		return nil, mapSaveError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	if oldISBN != saved.ISBN {
		if err := r.cache.Delete(ctx, fmt.Sprintf("book:isbn:%s", oldISBN)); err != nil {
			logger.Warn("book cache invalidation failed", err)
		}
	}
	r.invalidate(ctx, saved)
	return saved, nil
}

func mapSaveError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return book.ErrDuplicateISBN
	}
	return err
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	b, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, b)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, b *book.Book) {
	keys := []string{
		fmt.Sprintf("book:%s", b.ID),
		fmt.Sprintf("book:isbn:%s", b.ISBN),
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("book cache invalidation failed", err)
	}
}
