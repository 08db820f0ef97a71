package usecase

import (
	"errors"
	"testing"

	"nutrigram/pkg/logger"
	"nutrigram/services/notification/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository is a mock implementation of persistent.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(notification *entity.Notification) error {
	args := m.Called(notification)
	if args.Error(0) == nil && notification.ID == "" {
		notification.ID = "notification-generated"
	}
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByUserID(userID string, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountByUserID(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(notificationID, userID string) (bool, error) {
	args := m.Called(notificationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) GetUsername(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func TestHandleLikeNotification(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	repo.On("GetUsername", "liker-1").Return("alice_fit", nil)
	repo.On("Create", mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == "author-1" &&
			n.Title == "New Like" &&
			n.Message == "alice_fit liked your post" &&
			n.Type == "like" &&
			n.RelatedEntityID == "post-1" &&
			n.RelatedEntityType == "post"
	})).Return(nil)

	err := uc.HandleLikeNotification(map[string]interface{}{
		"type":     "like",
		"user_id":  "author-1",
		"liker_id": "liker-1",
		"post_id":  "post-1",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// A task missing required fields is permanently malformed: the handler drops
// it (nil, so the consumer acks) instead of erroring, which would requeue the
// same message forever.
func TestHandleLikeNotification_MissingFieldsDropped(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	err := uc.HandleLikeNotification(map[string]interface{}{"type": "like"})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestHandleFollowNotification_MissingFieldsDropped(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	err := uc.HandleFollowNotification(map[string]interface{}{"type": "follow", "user_id": "followee-1"})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

// Transient persistence failures still error so the consumer requeues.
func TestHandleLikeNotification_PersistenceFailure(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	repo.On("GetUsername", "liker-1").Return("alice_fit", nil)
	repo.On("Create", mock.Anything).Return(errors.New("connection refused"))

	err := uc.HandleLikeNotification(map[string]interface{}{
		"type":     "like",
		"user_id":  "author-1",
		"liker_id": "liker-1",
		"post_id":  "post-1",
	})

	assert.Error(t, err)
}

func TestHandleCommentNotification(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	repo.On("GetUsername", "commenter-1").Return("bob_macros", nil)
	repo.On("Create", mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == "author-1" &&
			n.Title == "New Comment" &&
			n.Message == "bob_macros commented on your post" &&
			n.Type == "comment"
	})).Return(nil)

	err := uc.HandleCommentNotification(map[string]interface{}{
		"type":         "comment",
		"user_id":      "author-1",
		"commenter_id": "commenter-1",
		"post_id":      "post-1",
		"comment_id":   "comment-1",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestHandleFollowNotification_UsernameFallback(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	repo.On("GetUsername", "follower-1").Return("", assert.AnError)
	repo.On("Create", mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == "followee-1" &&
			n.Title == "New Follower" &&
			n.Message == "Someone started following you" &&
			n.Type == "follow" &&
			n.RelatedEntityID == "follower-1" &&
			n.RelatedEntityType == "user"
	})).Return(nil)

	err := uc.HandleFollowNotification(map[string]interface{}{
		"type":        "follow",
		"user_id":     "followee-1",
		"follower_id": "follower-1",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetUserNotifications(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	expected := []*entity.Notification{
		{ID: "notification-2", UserID: "user-1", Title: "New Like"},
		{ID: "notification-1", UserID: "user-1", Title: "New Follower"},
	}
	repo.On("GetByUserID", "user-1", 20, 0).Return(expected, nil)
	repo.On("CountByUserID", "user-1").Return(int64(2), nil)
	repo.On("CountUnread", "user-1").Return(int64(1), nil)

	notifications, total, unread, err := uc.GetUserNotifications("user-1", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, expected, notifications)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), unread)
}

func TestGetUserNotifications_PageSizeClamped(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	repo.On("GetByUserID", "user-1", 100, 100).Return([]*entity.Notification{}, nil)
	repo.On("CountByUserID", "user-1").Return(int64(0), nil)
	repo.On("CountUnread", "user-1").Return(int64(0), nil)

	_, _, _, err := uc.GetUserNotifications("user-1", 2, 9999)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkRead_Success(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	repo.On("MarkRead", "notification-1", "user-1").Return(true, nil)

	err := uc.MarkRead("notification-1", "user-1")

	assert.NoError(t, err)
}

func TestMarkRead_NotOwner(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	// The ownership filter means another user's row never matches
	repo.On("MarkRead", "notification-1", "intruder").Return(false, nil)

	err := uc.MarkRead("notification-1", "intruder")

	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestMarkAllRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := NewNotificationUseCase(repo, nil, logger.New())

	repo.On("MarkAllRead", "user-1").Return(int64(5), nil)

	count, err := uc.MarkAllRead("user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
