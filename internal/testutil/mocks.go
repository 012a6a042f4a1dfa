package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/lab-utils/internal/model"
)

// MockPageRepository is a testify mock of repo.PageRepository.
type MockPageRepository struct {
	mock.Mock
}

func (m *MockPageRepository) Enqueue(ctx context.Context, urls []string) ([]model.Page, error) {
	args := m.Called(ctx, urls)
	return args.Get(0).([]model.Page), args.Error(1)
}

func (m *MockPageRepository) Get(ctx context.Context, id int64) (model.Page, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Page), args.Error(1)
}

func (m *MockPageRepository) List(ctx context.Context, filter model.PageFilter, limit int) ([]model.Page, error) {
	args := m.Called(ctx, filter, limit)
	return args.Get(0).([]model.Page), args.Error(1)
}

func (m *MockPageRepository) Claim(ctx context.Context) (model.Page, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Page), args.Error(1)
}

func (m *MockPageRepository) MarkFetched(ctx context.Context, id int64, body string, titles []string) error {
	args := m.Called(ctx, id, body, titles)
	return args.Error(0)
}

func (m *MockPageRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockPageRepository) Release(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPageRepository) Stats(ctx context.Context) (model.PageStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.PageStats), args.Error(1)
}
