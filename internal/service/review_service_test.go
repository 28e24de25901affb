package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"ideahub/internal/cache"
	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/notify"
)

func TestReviewService_Decide(t *testing.T) {
	ideaID := uuid.New()
	adminID := uuid.New()
	founderID := uuid.New()

	adminUser := &model.User{ID: adminID, Email: "admin@example.com", Role: model.RoleAdmin}
	founderUser := &model.User{ID: adminID, Email: "founder@example.com", Role: model.RoleFounder}

	tests := []struct {
		name          string
		action        model.ReviewAction
		comment       string
		setupMock     func(*MockIdeaRepository, *MockReviewLogRepository, *MockUserRepository)
		expectedError error
		wantStatus    model.IdeaStatus
	}{
		{
			name:    "successful approval",
			action:  model.ReviewActionApproved,
			comment: "Strong market fit",
			setupMock: func(ideas *MockIdeaRepository, logs *MockReviewLogRepository, users *MockUserRepository) {
				users.On("FindByID", mock.Anything, adminID).Return(adminUser, nil)
				ideas.On("UpdateStatusIfPending", mock.Anything, ideaID, model.IdeaStatusApproved, "Strong market fit").Return(int64(1), nil)
				ideas.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{
					ID:           ideaID,
					FounderID:    founderID,
					Status:       model.IdeaStatusApproved,
					AdminComment: "Strong market fit",
				}, nil)
				logs.On("Create", mock.Anything, mock.AnythingOfType("*model.ReviewLog")).Return(nil)
			},
			wantStatus: model.IdeaStatusApproved,
		},
		{
			name:    "successful rejection",
			action:  model.ReviewActionRejected,
			comment: "No clear revenue model",
			setupMock: func(ideas *MockIdeaRepository, logs *MockReviewLogRepository, users *MockUserRepository) {
				users.On("FindByID", mock.Anything, adminID).Return(adminUser, nil)
				ideas.On("UpdateStatusIfPending", mock.Anything, ideaID, model.IdeaStatusRejected, "No clear revenue model").Return(int64(1), nil)
				ideas.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{
					ID:           ideaID,
					FounderID:    founderID,
					Status:       model.IdeaStatusRejected,
					AdminComment: "No clear revenue model",
				}, nil)
				logs.On("Create", mock.Anything, mock.AnythingOfType("*model.ReviewLog")).Return(nil)
			},
			wantStatus: model.IdeaStatusRejected,
		},
		{
			name:    "already reviewed",
			action:  model.ReviewActionApproved,
			comment: "Second opinion",
			setupMock: func(ideas *MockIdeaRepository, logs *MockReviewLogRepository, users *MockUserRepository) {
				users.On("FindByID", mock.Anything, adminID).Return(adminUser, nil)
				ideas.On("UpdateStatusIfPending", mock.Anything, ideaID, model.IdeaStatusApproved, "Second opinion").Return(int64(0), nil)
				ideas.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{
					ID:     ideaID,
					Status: model.IdeaStatusRejected,
				}, nil)
			},
			expectedError: apperrors.ErrAlreadyReviewed,
		},
		{
			name:    "idea not found",
			action:  model.ReviewActionApproved,
			comment: "Looks promising",
			setupMock: func(ideas *MockIdeaRepository, logs *MockReviewLogRepository, users *MockUserRepository) {
				users.On("FindByID", mock.Anything, adminID).Return(adminUser, nil)
				ideas.On("UpdateStatusIfPending", mock.Anything, ideaID, model.IdeaStatusApproved, "Looks promising").Return(int64(0), nil)
				ideas.On("FindByID", mock.Anything, ideaID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrIdeaNotFound,
		},
		{
			name:    "caller is not an admin",
			action:  model.ReviewActionApproved,
			comment: "Looks promising",
			setupMock: func(ideas *MockIdeaRepository, logs *MockReviewLogRepository, users *MockUserRepository) {
				users.On("FindByID", mock.Anything, adminID).Return(founderUser, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:    "caller does not exist",
			action:  model.ReviewActionApproved,
			comment: "Looks promising",
			setupMock: func(ideas *MockIdeaRepository, logs *MockReviewLogRepository, users *MockUserRepository) {
				users.On("FindByID", mock.Anything, adminID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "blank comment",
			action:        model.ReviewActionApproved,
			comment:       "   ",
			setupMock:     func(ideas *MockIdeaRepository, logs *MockReviewLogRepository, users *MockUserRepository) {},
			expectedError: apperrors.ErrCommentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIdeas := new(MockIdeaRepository)
			mockLogs := new(MockReviewLogRepository)
			mockUsers := new(MockUserRepository)
			mockIdeas.TxLogs = mockLogs
			tt.setupMock(mockIdeas, mockLogs, mockUsers)

			broadcaster := &captureBroadcaster{}
			svc := NewReviewService(mockIdeas, mockLogs, mockUsers, broadcaster, (*cache.Client)(nil))

			idea, err := svc.Decide(context.Background(), ideaID, adminID, tt.action, tt.comment)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, idea)
				assert.Empty(t, broadcaster.events)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, idea)
				assert.Equal(t, tt.wantStatus, idea.Status)
				if assert.Len(t, broadcaster.events, 1) {
					assert.Equal(t, notify.EventIdeaUpdated, broadcaster.events[0].Event)
				}
			}

			mockIdeas.AssertExpectations(t)
			mockLogs.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestReviewService_Decide_PublishFailureDoesNotFailDecision(t *testing.T) {
	ideaID := uuid.New()
	adminID := uuid.New()

	mockIdeas := new(MockIdeaRepository)
	mockLogs := new(MockReviewLogRepository)
	mockUsers := new(MockUserRepository)
	mockIdeas.TxLogs = mockLogs

	mockUsers.On("FindByID", mock.Anything, adminID).Return(&model.User{ID: adminID, Role: model.RoleAdmin}, nil)
	mockIdeas.On("UpdateStatusIfPending", mock.Anything, ideaID, model.IdeaStatusApproved, "ship it").Return(int64(1), nil)
	mockIdeas.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Status: model.IdeaStatusApproved}, nil)
	mockLogs.On("Create", mock.Anything, mock.AnythingOfType("*model.ReviewLog")).Return(nil)

	broadcaster := &captureBroadcaster{err: notify.ErrQueueFull}
	svc := NewReviewService(mockIdeas, mockLogs, mockUsers, broadcaster, (*cache.Client)(nil))

	idea, err := svc.Decide(context.Background(), ideaID, adminID, model.ReviewActionApproved, "ship it")

	assert.NoError(t, err)
	assert.NotNil(t, idea)
	assert.Equal(t, model.IdeaStatusApproved, idea.Status)
	mockIdeas.AssertExpectations(t)
	mockLogs.AssertExpectations(t)
}

func TestReviewService_Decide_AuditEntryMatchesDecision(t *testing.T) {
	ideaID := uuid.New()
	adminID := uuid.New()

	mockIdeas := new(MockIdeaRepository)
	mockLogs := new(MockReviewLogRepository)
	mockUsers := new(MockUserRepository)
	mockIdeas.TxLogs = mockLogs

	mockUsers.On("FindByID", mock.Anything, adminID).Return(&model.User{ID: adminID, Role: model.RoleAdmin}, nil)
	mockIdeas.On("UpdateStatusIfPending", mock.Anything, ideaID, model.IdeaStatusRejected, "not viable").Return(int64(1), nil)
	mockIdeas.On("FindByID", mock.Anything, ideaID).Return(&model.Idea{ID: ideaID, Status: model.IdeaStatusRejected}, nil)

	var logged *model.ReviewLog
	mockLogs.On("Create", mock.Anything, mock.AnythingOfType("*model.ReviewLog")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*model.ReviewLog)
		}).
		Return(nil)

	svc := NewReviewService(mockIdeas, mockLogs, mockUsers, &captureBroadcaster{}, (*cache.Client)(nil))

	_, err := svc.Decide(context.Background(), ideaID, adminID, model.ReviewActionRejected, "not viable")

	assert.NoError(t, err)
	if assert.NotNil(t, logged) {
		assert.Equal(t, ideaID, logged.IdeaID)
		assert.Equal(t, adminID, logged.AdminID)
		assert.Equal(t, model.ReviewActionRejected, logged.Action)
		assert.Equal(t, "not viable", logged.Comment)
	}
}

func TestReviewService_History(t *testing.T) {
	mockIdeas := new(MockIdeaRepository)
	mockLogs := new(MockReviewLogRepository)
	mockUsers := new(MockUserRepository)

	expected := []model.ReviewLog{
		{ID: uuid.New(), Action: model.ReviewActionApproved},
		{ID: uuid.New(), Action: model.ReviewActionRejected},
	}
	mockLogs.On("List", mock.Anything).Return(expected, nil)

	svc := NewReviewService(mockIdeas, mockLogs, mockUsers, &captureBroadcaster{}, (*cache.Client)(nil))

	logs, err := svc.History(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, logs)
	mockLogs.AssertExpectations(t)
}
