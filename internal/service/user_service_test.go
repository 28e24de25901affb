package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ideahub/internal/cache"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
)

func newUserService(users *MockUserRepository) UserService {
	return NewUserService(users, (*cache.Client)(nil))
}

func TestUserService_Get(t *testing.T) {
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)

		user, err := newUserService(mockRepo).Get(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("missing", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		user, err := newUserService(mockRepo).Get(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	userID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("current-pass"), 10)

	tests := []struct {
		name            string
		currentPassword string
		setupMock       func(*MockUserRepository)
		expectedError   error
	}{
		{
			name:            "successful change",
			currentPassword: "current-pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, PasswordHash: string(hashed)}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					// The stored hash must verify against the new password.
					return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-pass-123")) == nil
				})).Return(nil)
			},
		},
		{
			name:            "wrong current password",
			currentPassword: "wrong-pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, PasswordHash: string(hashed)}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			err := newUserService(mockRepo).ChangePassword(context.Background(), userID, tt.currentPassword, "new-pass-123")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()
	newName := "Renamed Founder"
	newEmail := "renamed@example.com"

	t.Run("name and email change", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Old", Email: "old@example.com"}, nil)
		mockRepo.On("FindByEmail", mock.Anything, newEmail).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		user, err := newUserService(mockRepo).UpdateProfile(context.Background(), userID, ProfilePatch{Name: &newName, Email: &newEmail})

		assert.NoError(t, err)
		assert.Equal(t, newName, user.Name)
		assert.Equal(t, newEmail, user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("email belongs to someone else", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "old@example.com"}, nil)
		mockRepo.On("FindByEmail", mock.Anything, newEmail).Return(&model.User{ID: uuid.New(), Email: newEmail}, nil)

		user, err := newUserService(mockRepo).UpdateProfile(context.Background(), userID, ProfilePatch{Email: &newEmail})

		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		assert.Nil(t, user)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_UpdateUser_RoleChange(t *testing.T) {
	userID := uuid.New()
	adminRole := model.RoleAdmin

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Role: model.RoleFounder}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := newUserService(mockRepo).UpdateUser(context.Background(), userID, UserPatch{Role: &adminRole})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Delete(t *testing.T) {
	userID := uuid.New()

	t.Run("successful delete", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("DeleteWithIdeas", mock.Anything, userID).Return(int64(1), nil)

		assert.NoError(t, newUserService(mockRepo).Delete(context.Background(), userID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("DeleteWithIdeas", mock.Anything, userID).Return(int64(0), nil)

		err := newUserService(mockRepo).Delete(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		mockRepo.AssertExpectations(t)
	})
}
