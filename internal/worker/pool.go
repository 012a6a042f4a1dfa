package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/lab-utils/internal/crawler"
	"github.com/BuzzLyutic/lab-utils/internal/repo"
)

// Fetcher is satisfied by *crawler.Client.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Pool drains the page queue. Each worker claims one pending page per tick
// and fetches it through the crawler, politeness delay included. A failed
// page keeps the fetch error in its error column.
type Pool struct {
	repo     repo.PageRepository
	crawler  Fetcher
	logger   *zap.Logger
	count    int
	interval time.Duration
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

func NewPool(repo repo.PageRepository, crawler Fetcher, logger *zap.Logger, count int) *Pool {
	if count <= 0 {
		count = 1
	}
	return &Pool{
		repo:     repo,
		crawler:  crawler,
		logger:   logger,
		count:    count,
		interval: 1 * time.Second,
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.logger.Info("Starting worker pool", zap.Int("workers", p.count))

	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop cancels in-flight downloads and waits for every worker to exit.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.processNext(ctx, id); err != nil && !errors.Is(err, repo.ErrorQueueEmpty) && !errors.Is(err, context.Canceled) {
				p.logger.Error("worker error", zap.Int("worker", id), zap.Error(err))
			}
		}
	}
}

func (p *Pool) processNext(ctx context.Context, workerID int) error {
	page, err := p.repo.Claim(ctx)
	if err != nil {
		return err
	}

	p.logger.Info("Processing page",
		zap.Int("worker", workerID),
		zap.Int64("page_id", page.ID),
		zap.String("url", page.URL),
	)

	start := time.Now()
	body, err := p.crawler.Fetch(ctx, page.URL)

	if ctx.Err() != nil {
		// Shutting down: hand the page back to the queue.
		if err := p.repo.Release(context.Background(), page.ID); err != nil {
			p.logger.Error("release page", zap.Int64("page_id", page.ID), zap.Error(err))
		}
		return ctx.Err()
	}

	if err != nil {
		p.logger.Warn("Page failed",
			zap.Int("worker", workerID),
			zap.Int64("page_id", page.ID),
			zap.Int("attempts", page.Attempts),
			zap.Error(err),
		)
		return p.repo.MarkFailed(ctx, page.ID, err.Error())
	}

	titles := crawler.ExtractTitles(body)
	if err := p.repo.MarkFetched(ctx, page.ID, body, titles); err != nil {
		return err
	}
	p.logger.Info("Page fetched",
		zap.Int("worker", workerID),
		zap.Int64("page_id", page.ID),
		zap.Int("titles", len(titles)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
