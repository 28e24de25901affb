package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ideahub/internal/cache"
	"ideahub/internal/repository"
)

func TestAnalyticsService_SystemStats(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockIdeas := new(MockIdeaRepository)

	mockUsers.On("CountByRole", mock.Anything).Return(&repository.RoleCounts{Total: 4, Founders: 3, Admins: 1}, nil)
	mockIdeas.On("CountByStatus", mock.Anything).Return(&repository.StatusCounts{Total: 7, Pending: 3, Approved: 3, Rejected: 1}, nil)

	svc := NewAnalyticsService(mockUsers, mockIdeas, (*cache.Client)(nil))
	stats, err := svc.SystemStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.Users.Total)
	assert.Equal(t, stats.Users.Total, stats.Users.Founders+stats.Users.Admins)
	assert.Equal(t, stats.Projects.Total, stats.Projects.Pending+stats.Projects.Approved+stats.Projects.Rejected)
	mockUsers.AssertExpectations(t)
	mockIdeas.AssertExpectations(t)
}

func TestAnalyticsService_Growth(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockIdeas := new(MockIdeaRepository)

	userBuckets := []repository.MonthlyCount{{Month: "2026-08", Count: 2}, {Month: "2026-09", Count: 5}}
	ideaBuckets := []repository.MonthlyCount{{Month: "2026-09", Count: 3}}
	mockUsers.On("MonthlyGrowth", mock.Anything, mock.AnythingOfType("time.Time")).Return(userBuckets, nil)
	mockIdeas.On("MonthlyGrowth", mock.Anything, mock.AnythingOfType("time.Time")).Return(ideaBuckets, nil)

	svc := NewAnalyticsService(mockUsers, mockIdeas, (*cache.Client)(nil))
	growth, err := svc.Growth(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, userBuckets, growth.UserGrowth)
	assert.Equal(t, ideaBuckets, growth.IdeaGrowth)
	mockUsers.AssertExpectations(t)
	mockIdeas.AssertExpectations(t)
}
