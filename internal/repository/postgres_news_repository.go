package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mightcoding/ISSAConnect/internal/domain"
)

// PostgresNewsRepository implements NewsRepository using PostgreSQL
type PostgresNewsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresNewsRepository creates a new PostgresNewsRepository
func NewPostgresNewsRepository(pool *pgxpool.Pool) *PostgresNewsRepository {
	return &PostgresNewsRepository{pool: pool}
}

const newsColumns = `id, title, content, category,
	COALESCE(image_url, '') as image_url,
	excerpt, read_time, views, author_id, created_at, updated_at`

func scanNews(row pgx.Row) (*domain.News, error) {
	n := &domain.News{}
	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.Category,
		&n.ImageURL,
		&n.Excerpt,
		&n.ReadTime,
		&n.Views,
		&n.AuthorID,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts a new article
func (r *PostgresNewsRepository) Create(ctx context.Context, news *domain.News) error {
	query := `
		INSERT INTO news (id, title, content, category, image_url, excerpt,
			read_time, views, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		news.ID,
		news.Title,
		news.Content,
		news.Category,
		news.ImageURL,
		news.Excerpt,
		news.ReadTime,
		news.Views,
		news.AuthorID,
		news.CreatedAt,
		news.UpdatedAt,
	)
	return err
}

// GetByID retrieves an article; (nil, nil) when absent
func (r *PostgresNewsRepository) GetByID(ctx context.Context, id string) (*domain.News, error) {
	news, err := scanNews(r.pool.QueryRow(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return news, nil
}

// List returns the newest articles, capped at limit
func (r *PostgresNewsRepository) List(ctx context.Context, limit int) ([]*domain.News, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+newsColumns+` FROM news ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// Update updates an article
func (r *PostgresNewsRepository) Update(ctx context.Context, news *domain.News) error {
	query := `
		UPDATE news
		SET title = $2, content = $3, category = $4, image_url = NULLIF($5, ''),
		    excerpt = $6, read_time = $7, updated_at = $8
		WHERE id = $1
	`
	news.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		news.ID,
		news.Title,
		news.Content,
		news.Category,
		news.ImageURL,
		news.Excerpt,
		news.ReadTime,
		news.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

// Delete removes an article
func (r *PostgresNewsRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

// IncrementViews bumps the view counter atomically and returns the new value
func (r *PostgresNewsRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx,
		`UPDATE news SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNewsNotFound
		}
		return 0, err
	}
	return views, nil
}
