package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/model"
)

// ReviewLogRepository defines review log persistence operations. The contract
// is append-only: there are no update or delete operations.
type ReviewLogRepository interface {
	Create(ctx context.Context, log *model.ReviewLog) error
	List(ctx context.Context) ([]model.ReviewLog, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]model.ReviewLog, error)
}

type reviewLogRepository struct {
	db *gorm.DB
}

// NewReviewLogRepository builds a GORM-backed review log repository.
func NewReviewLogRepository(db *gorm.DB) ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) Create(ctx context.Context, log *model.ReviewLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *reviewLogRepository) List(ctx context.Context) ([]model.ReviewLog, error) {
	var logs []model.ReviewLog
	if err := r.db.WithContext(ctx).
		Preload("Idea").
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *reviewLogRepository) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]model.ReviewLog, error) {
	var logs []model.ReviewLog
	if err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
