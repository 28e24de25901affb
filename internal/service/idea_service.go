package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/cache"
	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/notify"
	"ideahub/internal/repository"
)

const (
	statsCacheTTL          = 30 * time.Second
	analyticsStatsCacheKey = "analytics:stats"
)

func statsCacheKey(founderID uuid.UUID) string {
	return fmt.Sprintf("idea_stats:%s", founderID)
}

// SubmitIdeaInput carries the fields of a new idea submission.
type SubmitIdeaInput struct {
	Title            string
	ProblemStatement string
	Solution         string
	TargetMarket     string
	TechStack        []string
}

// IdeaPatch carries a partial update of an owned idea. Nil fields are left
// unchanged.
type IdeaPatch struct {
	Title            *string
	ProblemStatement *string
	Solution         *string
	TargetMarket     *string
	TechStack        []string
}

// ListOptions narrows and orders idea listings.
type ListOptions struct {
	Statuses []model.IdeaStatus
	Search   string
	Tech     string
	SortBy   string
	Order    string
}

// IdeaService handles idea submission and the founder-facing query surface.
type IdeaService interface {
	Submit(ctx context.Context, founderID uuid.UUID, input SubmitIdeaInput) (*model.Idea, error)
	ListFor(ctx context.Context, callerID uuid.UUID, callerRole model.UserRole, opts ListOptions) ([]model.Idea, error)
	ListAll(ctx context.Context, opts ListOptions, page, limit int) (*repository.IdeaPage, error)
	GetByID(ctx context.Context, id, callerID uuid.UUID, callerRole model.UserRole) (*model.Idea, error)
	UpdateOwned(ctx context.Context, id, founderID uuid.UUID, patch IdeaPatch) (*model.Idea, error)
	DeleteOwned(ctx context.Context, id, founderID uuid.UUID) error
	StatsFor(ctx context.Context, founderID uuid.UUID) (*repository.StatusCounts, error)
}

type ideaService struct {
	ideaRepo    repository.IdeaRepository
	broadcaster notify.Broadcaster
	cache       *cache.Client
}

// NewIdeaService creates a new idea service.
func NewIdeaService(ideaRepo repository.IdeaRepository, broadcaster notify.Broadcaster, cache *cache.Client) IdeaService {
	return &ideaService{
		ideaRepo:    ideaRepo,
		broadcaster: broadcaster,
		cache:       cache,
	}
}

// Submit creates a pending idea owned by founderID.
func (s *ideaService) Submit(ctx context.Context, founderID uuid.UUID, input SubmitIdeaInput) (*model.Idea, error) {
	idea := &model.Idea{
		FounderID:        founderID,
		Title:            input.Title,
		ProblemStatement: input.ProblemStatement,
		Solution:         input.Solution,
		TargetMarket:     input.TargetMarket,
		TechStack:        input.TechStack,
		Status:           model.IdeaStatusPending,
	}
	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}

	_ = s.cache.Delete(ctx, statsCacheKey(founderID), analyticsStatsCacheKey)

	if err := s.broadcaster.Publish(notify.EventIdeaCreated, idea); err != nil {
		log.Printf("notify publish %s failed: %v", notify.EventIdeaCreated, err)
	}

	return idea, nil
}

// ListFor returns the caller's ideas; admins see everyone's.
func (s *ideaService) ListFor(ctx context.Context, callerID uuid.UUID, callerRole model.UserRole, opts ListOptions) ([]model.Idea, error) {
	filter := repository.IdeaFilter{
		Statuses: opts.Statuses,
		Search:   opts.Search,
		SortBy:   opts.SortBy,
		Order:    opts.Order,
	}
	if callerRole != model.RoleAdmin {
		filter.FounderID = &callerID
	}
	return s.ideaRepo.List(ctx, filter)
}

// ListAll is the admin listing: filterable and always paginated.
func (s *ideaService) ListAll(ctx context.Context, opts ListOptions, page, limit int) (*repository.IdeaPage, error) {
	filter := repository.IdeaFilter{
		Statuses: opts.Statuses,
		Search:   opts.Search,
		Tech:     opts.Tech,
		SortBy:   opts.SortBy,
		Order:    opts.Order,
	}
	return s.ideaRepo.ListPage(ctx, filter, page, limit)
}

// GetByID returns an idea. Founders only see their own; a foreign id comes
// back as not-found so existence cannot be probed.
func (s *ideaService) GetByID(ctx context.Context, id, callerID uuid.UUID, callerRole model.UserRole) (*model.Idea, error) {
	var (
		idea *model.Idea
		err  error
	)
	if callerRole == model.RoleAdmin {
		idea, err = s.ideaRepo.FindByID(ctx, id)
	} else {
		idea, err = s.ideaRepo.FindOwned(ctx, id, callerID)
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrIdeaNotFound
		}
		return nil, err
	}
	return idea, nil
}

// UpdateOwned applies a partial update while the idea is still pending.
func (s *ideaService) UpdateOwned(ctx context.Context, id, founderID uuid.UUID, patch IdeaPatch) (*model.Idea, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.ProblemStatement != nil {
		updates["problem_statement"] = *patch.ProblemStatement
	}
	if patch.Solution != nil {
		updates["solution"] = *patch.Solution
	}
	if patch.TargetMarket != nil {
		updates["target_market"] = *patch.TargetMarket
	}
	if patch.TechStack != nil {
		updates["tech_stack"] = model.TechStack(patch.TechStack)
	}
	if len(updates) == 0 {
		return s.ownedOrError(ctx, id, founderID)
	}

	rows, err := s.ideaRepo.UpdateOwnedPending(ctx, id, founderID, updates)
	if err != nil {
		return nil, fmt.Errorf("update idea: %w", err)
	}
	if rows == 0 {
		return nil, s.guardFailure(ctx, id, founderID)
	}

	_ = s.cache.Delete(ctx, statsCacheKey(founderID))

	return s.ownedOrError(ctx, id, founderID)
}

// DeleteOwned permanently removes a pending idea. Deletions are not audited;
// only decisions are.
func (s *ideaService) DeleteOwned(ctx context.Context, id, founderID uuid.UUID) error {
	rows, err := s.ideaRepo.DeleteOwnedPending(ctx, id, founderID)
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	if rows == 0 {
		return s.guardFailure(ctx, id, founderID)
	}

	_ = s.cache.Delete(ctx, statsCacheKey(founderID), analyticsStatsCacheKey)
	return nil
}

// StatsFor returns the founder's status counters, cache-aside with a short TTL.
func (s *ideaService) StatsFor(ctx context.Context, founderID uuid.UUID) (*repository.StatusCounts, error) {
	key := statsCacheKey(founderID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached repository.StatusCounts
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := s.ideaRepo.StatsByFounder(ctx, founderID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(counts); err == nil {
		_ = s.cache.Set(ctx, key, payload, statsCacheTTL)
	}
	return counts, nil
}

func (s *ideaService) ownedOrError(ctx context.Context, id, founderID uuid.UUID) (*model.Idea, error) {
	idea, err := s.ideaRepo.FindOwned(ctx, id, founderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrIdeaNotFound
		}
		return nil, err
	}
	return idea, nil
}

// guardFailure tells apart the two reasons an owned-pending write can affect
// zero rows: the idea is invisible to this founder (missing or foreign), or
// it exists but already left pending.
func (s *ideaService) guardFailure(ctx context.Context, id, founderID uuid.UUID) error {
	if _, err := s.ideaRepo.FindOwned(ctx, id, founderID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrIdeaNotFound
		}
		return err
	}
	return errors.ErrIdeaNotEditable
}
