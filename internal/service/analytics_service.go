package service

import (
	"context"
	"encoding/json"
	"time"

	"ideahub/internal/cache"
	"ideahub/internal/repository"
)

const (
	analyticsCacheTTL       = time.Minute
	analyticsGrowthCacheKey = "analytics:growth"
	growthWindowMonths      = 6
)

// SystemStats is the admin dashboard rollup.
type SystemStats struct {
	Users    repository.RoleCounts   `json:"users"`
	Projects repository.StatusCounts `json:"projects"`
}

// GrowthStats holds monthly signup and submission buckets for the trailing
// growth window.
type GrowthStats struct {
	UserGrowth []repository.MonthlyCount `json:"user_growth"`
	IdeaGrowth []repository.MonthlyCount `json:"idea_growth"`
}

// AnalyticsService provides read-only rollups over users and ideas. It has no
// write path.
type AnalyticsService interface {
	SystemStats(ctx context.Context) (*SystemStats, error)
	Growth(ctx context.Context) (*GrowthStats, error)
}

type analyticsService struct {
	userRepo repository.UserRepository
	ideaRepo repository.IdeaRepository
	cache    *cache.Client
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(userRepo repository.UserRepository, ideaRepo repository.IdeaRepository, cache *cache.Client) AnalyticsService {
	return &analyticsService{
		userRepo: userRepo,
		ideaRepo: ideaRepo,
		cache:    cache,
	}
}

// SystemStats returns user counts by role and idea counts by status. Each
// block comes from one grouped query, so its numbers are mutually consistent.
func (s *analyticsService) SystemStats(ctx context.Context) (*SystemStats, error) {
	if data, _ := s.cache.Get(ctx, analyticsStatsCacheKey); data != nil {
		var cached SystemStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	users, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.ideaRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SystemStats{Users: *users, Projects: *projects}
	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, analyticsStatsCacheKey, payload, analyticsCacheTTL)
	}
	return stats, nil
}

// Growth returns monthly new-user and new-idea counts for the last six months.
func (s *analyticsService) Growth(ctx context.Context) (*GrowthStats, error) {
	if data, _ := s.cache.Get(ctx, analyticsGrowthCacheKey); data != nil {
		var cached GrowthStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	since := time.Now().AddDate(0, -growthWindowMonths, 0)

	userGrowth, err := s.userRepo.MonthlyGrowth(ctx, since)
	if err != nil {
		return nil, err
	}
	ideaGrowth, err := s.ideaRepo.MonthlyGrowth(ctx, since)
	if err != nil {
		return nil, err
	}

	growth := &GrowthStats{UserGrowth: userGrowth, IdeaGrowth: ideaGrowth}
	if payload, err := json.Marshal(growth); err == nil {
		_ = s.cache.Set(ctx, analyticsGrowthCacheKey, payload, analyticsCacheTTL)
	}
	return growth, nil
}
