package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/lab-utils/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	// ErrorQueueEmpty is returned by Claim when no page is pending.
	ErrorQueueEmpty = errors.New("queue empty")
)

const pageColumns = `id, url, status, body, titles, attempts, error, created_at, updated_at`

type PageRepo struct {
	pool *pgxpool.Pool
}

func NewPageRepo(pool *pgxpool.Pool) *PageRepo {
	return &PageRepo{
		pool: pool,
	}
}

// Enqueue inserts the urls as pending pages. A url that is already queued
// keeps its row and is returned as is.
func (r *PageRepo) Enqueue(ctx context.Context, urls []string) ([]model.Page, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	pages := make([]model.Page, 0, len(urls))
	for _, url := range urls {
		row := tx.QueryRow(ctx, `
			INSERT INTO pages (url)
			VALUES ($1)
			ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
			RETURNING `+pageColumns, url)
		p, err := scanPage(row)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}

	return pages, tx.Commit(ctx)
}

func (r *PageRepo) Get(ctx context.Context, id int64) (model.Page, error) {
	p, err := scanPage(r.pool.QueryRow(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrorNotFound
	}
	return p, err
}

func (r *PageRepo) List(ctx context.Context, filter model.PageFilter, limit int) ([]model.Page, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+pageColumns+`
		FROM pages
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, filter.Status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := make([]model.Page, 0, limit)
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// Claim moves the oldest pending page to processing. Concurrent callers
// never receive the same page.
func (r *PageRepo) Claim(ctx context.Context) (model.Page, error) {
	p, err := scanPage(r.pool.QueryRow(ctx, `
		WITH claimed AS (
			SELECT id
			FROM pages
			WHERE status = 'pending'
			ORDER BY created_at, id
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		UPDATE pages
		SET status = 'processing', attempts = attempts + 1, updated_at = now()
		FROM claimed
		WHERE pages.id = claimed.id
		RETURNING pages.id, pages.url, pages.status, pages.body, pages.titles,
		          pages.attempts, pages.error, pages.created_at, pages.updated_at
	`))
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrorQueueEmpty
	}
	return p, err
}

func (r *PageRepo) MarkFetched(ctx context.Context, id int64, body string, titles []string) error {
	if titles == nil {
		titles = []string{}
	}
	return r.exec(ctx, `
		UPDATE pages
		SET status = 'fetched', body = $2, titles = $3, error = NULL, updated_at = now()
		WHERE id = $1
	`, id, body, titles)
}

func (r *PageRepo) MarkFailed(ctx context.Context, id int64, reason string) error {
	return r.exec(ctx, `
		UPDATE pages
		SET status = 'failed', error = $2, updated_at = now()
		WHERE id = $1
	`, id, reason)
}

// Release puts a processing page back in the queue.
func (r *PageRepo) Release(ctx context.Context, id int64) error {
	return r.exec(ctx, `
		UPDATE pages SET status = 'pending', updated_at = now()
		WHERE id = $1 AND status = 'processing'
	`, id)
}

func (r *PageRepo) Stats(ctx context.Context) (model.PageStats, error) {
	var s model.PageStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE status = 'fetched'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COUNT(*)
		FROM pages
	`).Scan(&s.Pending, &s.Processing, &s.Fetched, &s.Failed, &s.Total)
	return s, err
}

func (r *PageRepo) exec(ctx context.Context, sql string, args ...interface{}) error {
	cmd, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func scanPage(row pgx.Row) (model.Page, error) {
	var p model.Page
	err := row.Scan(&p.ID, &p.URL, &p.Status, &p.Body, &p.Titles, &p.Attempts, &p.Error, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
