package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/cache"
	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/notify"
	"ideahub/internal/repository"
)

// ReviewService enforces the idea review workflow: an idea transitions away
// from pending exactly once, every decision is audited, and interested
// clients are notified on a best-effort basis.
type ReviewService interface {
	Decide(ctx context.Context, ideaID, adminID uuid.UUID, action model.ReviewAction, comment string) (*model.Idea, error)
	History(ctx context.Context) ([]model.ReviewLog, error)
}

type reviewService struct {
	ideaRepo    repository.IdeaRepository
	logRepo     repository.ReviewLogRepository
	userRepo    repository.UserRepository
	broadcaster notify.Broadcaster
	cache       *cache.Client
}

// NewReviewService creates a new review service.
func NewReviewService(
	ideaRepo repository.IdeaRepository,
	logRepo repository.ReviewLogRepository,
	userRepo repository.UserRepository,
	broadcaster notify.Broadcaster,
	cache *cache.Client,
) ReviewService {
	return &reviewService{
		ideaRepo:    ideaRepo,
		logRepo:     logRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
		cache:       cache,
	}
}

// Decide transitions a pending idea to approved or rejected.
//
// The status write is a compare-and-swap: "UPDATE ... WHERE id = ? AND
// status = 'pending'". If two decisions race on the same idea, at most one
// update hits a pending row; the loser sees zero rows affected and gets
// ErrAlreadyReviewed. The status update and the audit entry are committed in
// one transaction, so a decided idea always has exactly one review log.
func (s *reviewService) Decide(ctx context.Context, ideaID, adminID uuid.UUID, action model.ReviewAction, comment string) (*model.Idea, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, errors.ErrCommentRequired
	}

	admin, err := s.userRepo.FindByID(ctx, adminID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrForbidden
		}
		return nil, fmt.Errorf("resolve admin: %w", err)
	}
	if !admin.IsAdmin() {
		return nil, errors.ErrForbidden
	}

	var status model.IdeaStatus
	switch action {
	case model.ReviewActionApproved:
		status = model.IdeaStatusApproved
	case model.ReviewActionRejected:
		status = model.IdeaStatusRejected
	default:
		return nil, fmt.Errorf("unknown review action %q", action)
	}

	var updated *model.Idea
	err = s.ideaRepo.WithTransaction(ctx, func(ctx context.Context, ideas repository.IdeaRepository, logs repository.ReviewLogRepository) error {
		rows, err := ideas.UpdateStatusIfPending(ctx, ideaID, status, comment)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if rows == 0 {
			// Guard failed: either the idea does not exist or it already
			// left pending. Tell those apart without mutating anything.
			if _, err := ideas.FindByID(ctx, ideaID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.ErrIdeaNotFound
				}
				return fmt.Errorf("find idea: %w", err)
			}
			return errors.ErrAlreadyReviewed
		}

		updated, err = ideas.FindByID(ctx, ideaID)
		if err != nil {
			return fmt.Errorf("reload idea: %w", err)
		}

		return logs.Create(ctx, &model.ReviewLog{
			IdeaID:  ideaID,
			AdminID: adminID,
			Action:  action,
			Comment: comment,
		})
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, statsCacheKey(updated.FounderID), analyticsStatsCacheKey)

	// Fire-and-forget: the decision is durable at this point, a failed
	// publish must not surface to the caller.
	if err := s.broadcaster.Publish(notify.EventIdeaUpdated, updated); err != nil {
		log.Printf("notify publish %s failed: %v", notify.EventIdeaUpdated, err)
	}

	return updated, nil
}

// History lists all moderation decisions, newest first.
func (s *reviewService) History(ctx context.Context) ([]model.ReviewLog, error) {
	return s.logRepo.List(ctx)
}
