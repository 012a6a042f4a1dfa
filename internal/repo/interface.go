package repo

import (
	"context"

	"github.com/BuzzLyutic/lab-utils/internal/model"
)

// PageRepository stores the download queue.
type PageRepository interface {
	Enqueue(ctx context.Context, urls []string) ([]model.Page, error)
	Get(ctx context.Context, id int64) (model.Page, error)
	List(ctx context.Context, filter model.PageFilter, limit int) ([]model.Page, error)
	Claim(ctx context.Context) (model.Page, error)
	MarkFetched(ctx context.Context, id int64, body string, titles []string) error
	MarkFailed(ctx context.Context, id int64, reason string) error
	Release(ctx context.Context, id int64) error
	Stats(ctx context.Context) (model.PageStats, error)
}
