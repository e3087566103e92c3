package app

import (
	"context"

	"study_portal_service/internal/social/domain"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository Mock PostRepository
type MockPostRepository struct {
	mock.Mock
}

// Insert mock post insert
func (m *MockPostRepository) Insert(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// FindByID mock post lookup
func (m *MockPostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

// List mock feed query
func (m *MockPostRepository) List(ctx context.Context, limit int64) ([]domain.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

// Replace mock full document replace
func (m *MockPostRepository) Replace(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// Delete mock post delete
func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVisitRepository Mock VisitRepository
type MockVisitRepository struct {
	mock.Mock
}

// Upsert mock visit upsert
func (m *MockVisitRepository) Upsert(ctx context.Context, visit *domain.SocialVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

// Active mock activity window query
func (m *MockVisitRepository) Active(ctx context.Context) ([]domain.SocialVisit, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.SocialVisit), args.Error(1)
	}
	return nil, args.Error(1)
}

// Known mock user directory query
func (m *MockVisitRepository) Known(ctx context.Context, limit int64) ([]domain.SocialVisit, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.SocialVisit), args.Error(1)
	}
	return nil, args.Error(1)
}
