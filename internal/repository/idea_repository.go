package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/model"
)

// IdeaFilter narrows idea listings. Zero values mean "no filter".
type IdeaFilter struct {
	FounderID *uuid.UUID
	Statuses  []model.IdeaStatus
	Search    string // title substring, case-insensitive
	Tech      string // tech stack tag substring, case-insensitive
	SortBy    string
	Order     string // "asc" or "desc"
}

// IdeaPage is one page of an idea listing with total-count metadata.
type IdeaPage struct {
	Docs       []model.Idea `json:"docs"`
	TotalDocs  int64        `json:"totalDocs"`
	Limit      int          `json:"limit"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

// StatusCounts holds idea counts per review status. Populated by a single
// grouped query so the numbers always add up.
type StatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// MonthlyCount is one month bucket of a growth rollup.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// IdeaRepository defines idea persistence operations.
type IdeaRepository interface {
	Create(ctx context.Context, idea *model.Idea) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	FindOwned(ctx context.Context, id, founderID uuid.UUID) (*model.Idea, error)
	List(ctx context.Context, filter IdeaFilter) ([]model.Idea, error)
	ListPage(ctx context.Context, filter IdeaFilter, page, limit int) (*IdeaPage, error)
	// UpdateOwnedPending applies updates only while the idea is still owned by
	// founderID and pending. Returns rows affected; zero means the guard failed.
	UpdateOwnedPending(ctx context.Context, id, founderID uuid.UUID, updates map[string]interface{}) (int64, error)
	// DeleteOwnedPending removes the idea under the same guard as UpdateOwnedPending.
	DeleteOwnedPending(ctx context.Context, id, founderID uuid.UUID) (int64, error)
	// UpdateStatusIfPending is the compare-and-swap at the heart of the review
	// workflow: the status write succeeds only if the row is still pending.
	// Zero rows affected means the idea is missing or already decided.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.IdeaStatus, comment string) (int64, error)
	StatsByFounder(ctx context.Context, founderID uuid.UUID) (*StatusCounts, error)
	CountByStatus(ctx context.Context) (*StatusCounts, error)
	MonthlyGrowth(ctx context.Context, since time.Time) ([]MonthlyCount, error)
	// WithTransaction runs fn with idea and review-log repositories bound to
	// one database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, ideas IdeaRepository, logs ReviewLogRepository) error) error
}

type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository builds a GORM-backed idea repository.
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) Create(ctx context.Context, idea *model.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

func (r *ideaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// FindOwned fetches an idea only when founderID owns it. A miss on either
// condition comes back as gorm.ErrRecordNotFound, so callers cannot tell a
// foreign idea apart from a missing one.
func (r *ideaRepository) FindOwned(ctx context.Context, id, founderID uuid.UUID) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).
		Where("id = ? AND founder_id = ?", id, founderID).
		First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// allowed sort columns; anything else falls back to created_at
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	"status":     "status",
}

func applyFilter(q *gorm.DB, filter IdeaFilter) *gorm.DB {
	if filter.FounderID != nil {
		q = q.Where("founder_id = ?", *filter.FounderID)
	}
	if len(filter.Statuses) == 1 {
		q = q.Where("status = ?", filter.Statuses[0])
	} else if len(filter.Statuses) > 1 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+escapeLike(filter.Search)+"%")
	}
	if filter.Tech != "" {
		q = q.Where("LOWER(tech_stack) LIKE ?", "%"+escapeLike(filter.Tech)+"%")
	}
	return q
}

// escapeLike neutralizes LIKE wildcards in user-provided search terms.
func escapeLike(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func orderClause(filter IdeaFilter) string {
	col, ok := sortColumns[filter.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if filter.Order == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

func (r *ideaRepository) List(ctx context.Context, filter IdeaFilter) ([]model.Idea, error) {
	var ideas []model.Idea
	q := applyFilter(r.db.WithContext(ctx).Model(&model.Idea{}), filter)
	if err := q.Preload("Founder").Order(orderClause(filter)).Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepository) ListPage(ctx context.Context, filter IdeaFilter, page, limit int) (*IdeaPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := applyFilter(r.db.WithContext(ctx).Model(&model.Idea{}), filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var ideas []model.Idea
	if err := q.Preload("Founder").
		Order(orderClause(filter)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ideas).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &IdeaPage{
		Docs:       ideas,
		TotalDocs:  total,
		Limit:      limit,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (r *ideaRepository) UpdateOwnedPending(ctx context.Context, id, founderID uuid.UUID, updates map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Idea{}).
		Where("id = ? AND founder_id = ? AND status = ?", id, founderID, model.IdeaStatusPending).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *ideaRepository) DeleteOwnedPending(ctx context.Context, id, founderID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND founder_id = ? AND status = ?", id, founderID, model.IdeaStatusPending).
		Delete(&model.Idea{})
	return res.RowsAffected, res.Error
}

func (r *ideaRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.IdeaStatus, comment string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Idea{}).
		Where("id = ? AND status = ?", id, model.IdeaStatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"admin_comment": comment,
		})
	return res.RowsAffected, res.Error
}

type statusRow struct {
	Status model.IdeaStatus
	Count  int64
}

func countsFromRows(rows []statusRow) *StatusCounts {
	counts := &StatusCounts{}
	for _, row := range rows {
		switch row.Status {
		case model.IdeaStatusPending:
			counts.Pending = row.Count
		case model.IdeaStatusApproved:
			counts.Approved = row.Count
		case model.IdeaStatusRejected:
			counts.Rejected = row.Count
		}
		counts.Total += row.Count
	}
	return counts
}

// StatsByFounder computes all four counters in one grouped query, so the
// total always equals pending+approved+rejected even under concurrent writes.
func (r *ideaRepository) StatsByFounder(ctx context.Context, founderID uuid.UUID) (*StatusCounts, error) {
	var rows []statusRow
	if err := r.db.WithContext(ctx).Model(&model.Idea{}).
		Select("status, COUNT(*) AS count").
		Where("founder_id = ?", founderID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return countsFromRows(rows), nil
}

func (r *ideaRepository) CountByStatus(ctx context.Context) (*StatusCounts, error) {
	var rows []statusRow
	if err := r.db.WithContext(ctx).Model(&model.Idea{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return countsFromRows(rows), nil
}

func (r *ideaRepository) MonthlyGrowth(ctx context.Context, since time.Time) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	if err := r.db.WithContext(ctx).Model(&model.Idea{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ideaRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, ideas IdeaRepository, logs ReviewLogRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &ideaRepository{db: tx}, &reviewLogRepository{db: tx})
	})
}
