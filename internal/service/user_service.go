package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ideahub/internal/cache"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
)

// ProfilePatch carries a self-service profile update. Nil fields are left
// unchanged.
type ProfilePatch struct {
	Name  *string
	Email *string
}

// UserPatch carries an admin-side user update; it additionally allows
// changing the role.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *model.UserRole
}

// UserService handles profile self-service and admin user management.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*model.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error)
	// Delete removes the user together with all ideas they own.
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(userRepo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{userRepo: userRepo, cache: cache}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateProfile changes the caller's own name and/or email.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*model.User, error) {
	return s.applyPatch(ctx, id, UserPatch{Name: patch.Name, Email: patch.Email})
}

// ChangePassword verifies the current password before storing a new hash.
func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// UpdateUser is the admin-side patch, including role changes. A role change
// only reaches tokens on the user's next login or refresh.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error) {
	return s.applyPatch(ctx, id, patch)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.userRepo.DeleteWithIdeas(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrUserNotFound
	}

	_ = s.cache.Delete(ctx, statsCacheKey(id), analyticsStatsCacheKey)
	return nil
}

func (s *userService) applyPatch(ctx context.Context, id uuid.UUID, patch UserPatch) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *patch.Email)
		if err == nil && existing != nil && existing.ID != id {
			return nil, apperrors.ErrEmailTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *patch.Email
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
