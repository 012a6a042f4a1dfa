package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/BuzzLyutic/lab-utils/internal/model"
	"github.com/BuzzLyutic/lab-utils/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

const (
	maxBatch     = 100
	defaultLimit = 20
	maxLimit     = 100
)

type PageService struct {
	repo repo.PageRepository
}

func NewPageService(repo repo.PageRepository) *PageService {
	return &PageService{repo: repo}
}

// Enqueue validates and queues urls for the worker pool.
func (s *PageService) Enqueue(ctx context.Context, urls []string) ([]model.Page, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no urls", ErrValidation)
	}
	if len(urls) > maxBatch {
		return nil, fmt.Errorf("%w: at most %d urls per batch", ErrValidation, maxBatch)
	}

	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if err := ValidateURL(u); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, u)
	}
	return s.repo.Enqueue(ctx, cleaned)
}

func (s *PageService) Get(ctx context.Context, id int64) (model.Page, error) {
	return s.repo.Get(ctx, id)
}

func (s *PageService) List(ctx context.Context, filter model.PageFilter, limit int) ([]model.Page, error) {
	if filter.Status != nil && !validStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *filter.Status)
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return s.repo.List(ctx, filter, limit)
}

func (s *PageService) Stats(ctx context.Context) (model.PageStats, error) {
	return s.repo.Stats(ctx)
}

// ValidateURL accepts absolute http and https urls only.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: url %q must use http or https", ErrValidation, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: url %q has no host", ErrValidation, raw)
	}
	return nil
}

func validStatus(s string) bool {
	switch s {
	case model.PageStatusPending, model.PageStatusProcessing, model.PageStatusFetched, model.PageStatusFailed:
		return true
	}
	return false
}
