package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ideahub/internal/model"
	"ideahub/internal/notify"
	"ideahub/internal/repository"
)

// MockIdeaRepository is a mock implementation of IdeaRepository.
type MockIdeaRepository struct {
	mock.Mock
	// TxLogs is handed to WithTransaction callbacks as the transaction-bound
	// review log repository.
	TxLogs repository.ReviewLogRepository
}

func (m *MockIdeaRepository) Create(ctx context.Context, idea *model.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) FindOwned(ctx context.Context, id, founderID uuid.UUID) (*model.Idea, error) {
	args := m.Called(ctx, id, founderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) List(ctx context.Context, filter repository.IdeaFilter) ([]model.Idea, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) ListPage(ctx context.Context, filter repository.IdeaFilter, page, limit int) (*repository.IdeaPage, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.IdeaPage), args.Error(1)
}

func (m *MockIdeaRepository) UpdateOwnedPending(ctx context.Context, id, founderID uuid.UUID, updates map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, founderID, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIdeaRepository) DeleteOwnedPending(ctx context.Context, id, founderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, founderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIdeaRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.IdeaStatus, comment string) (int64, error) {
	args := m.Called(ctx, id, status, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIdeaRepository) StatsByFounder(ctx context.Context, founderID uuid.UUID) (*repository.StatusCounts, error) {
	args := m.Called(ctx, founderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StatusCounts), args.Error(1)
}

func (m *MockIdeaRepository) CountByStatus(ctx context.Context) (*repository.StatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StatusCounts), args.Error(1)
}

func (m *MockIdeaRepository) MonthlyGrowth(ctx context.Context, since time.Time) ([]repository.MonthlyCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthlyCount), args.Error(1)
}

// WithTransaction runs the callback against the mock itself, so expectations
// set on the mock cover queries made inside the transaction too.
func (m *MockIdeaRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, ideas repository.IdeaRepository, logs repository.ReviewLogRepository) error) error {
	return fn(ctx, m, m.TxLogs)
}

// MockReviewLogRepository is a mock implementation of ReviewLogRepository.
type MockReviewLogRepository struct {
	mock.Mock
}

func (m *MockReviewLogRepository) Create(ctx context.Context, log *model.ReviewLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockReviewLogRepository) List(ctx context.Context) ([]model.ReviewLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReviewLog), args.Error(1)
}

func (m *MockReviewLogRepository) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]model.ReviewLog, error) {
	args := m.Called(ctx, ideaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReviewLog), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteWithIdeas(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (*repository.RoleCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RoleCounts), args.Error(1)
}

func (m *MockUserRepository) MonthlyGrowth(ctx context.Context, since time.Time) ([]repository.MonthlyCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthlyCount), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, role model.UserRole, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, model.UserRole, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Get(2).(model.UserRole), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// captureBroadcaster records published events; a non-nil err makes every
// Publish fail.
type captureBroadcaster struct {
	events []notify.Event
	err    error
}

func (b *captureBroadcaster) Publish(event string, payload interface{}) error {
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, notify.Event{Event: event, Payload: payload})
	return nil
}
