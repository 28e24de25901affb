package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideahub/internal/model"
)

// RoleCounts holds user counts per role from a single grouped query.
type RoleCounts struct {
	Total    int64 `json:"total"`
	Founders int64 `json:"founders"`
	Admins   int64 `json:"admins"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	// DeleteWithIdeas removes the user and all ideas they own in one
	// transaction, so no orphaned ownership references survive. Returns rows
	// affected for the user row.
	DeleteWithIdeas(ctx context.Context, id uuid.UUID) (int64, error)
	CountByRole(ctx context.Context) (*RoleCounts, error)
	MonthlyGrowth(ctx context.Context, since time.Time) ([]MonthlyCount, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) DeleteWithIdeas(ctx context.Context, id uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("founder_id = ?", id).Delete(&model.Idea{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

func (r *userRepository) CountByRole(ctx context.Context) (*RoleCounts, error) {
	var rows []struct {
		Role  model.UserRole
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := &RoleCounts{}
	for _, row := range rows {
		switch row.Role {
		case model.RoleFounder:
			counts.Founders = row.Count
		case model.RoleAdmin:
			counts.Admins = row.Count
		}
		counts.Total += row.Count
	}
	return counts, nil
}

func (r *userRepository) MonthlyGrowth(ctx context.Context, since time.Time) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
