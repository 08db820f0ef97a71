package usecase

import (
	"testing"
	"time"

	"nutrigram/pkg/logger"
	"nutrigram/services/feed/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFeedRepository is a mock implementation of persistent.FeedRepository
type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) GetFollowingIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFeedRepository) GetFeedPosts(authorIDs []string, limit, offset int) ([]*entity.FeedPost, error) {
	args := m.Called(authorIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FeedPost), args.Error(1)
}

func (m *MockFeedRepository) CountFeedPosts(authorIDs []string) (int64, error) {
	args := m.Called(authorIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedRepository) GetLikeCounts(postIDs []string) (map[string]int64, error) {
	args := m.Called(postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockFeedRepository) GetCommentCounts(postIDs []string) (map[string]int64, error) {
	args := m.Called(postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockFeedRepository) GetLikedPostIDs(userID string, postIDs []string) ([]string, error) {
	args := m.Called(userID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFeedRepository) GetUsernames(userIDs []string) (map[string]string, error) {
	args := m.Called(userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func TestGetFeed_AnnotatesReturnedPage(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	uc := NewFeedUseCase(feedRepo, logger.New())

	now := time.Now()
	posts := []*entity.FeedPost{
		{ID: "post-2", UserID: "friend-1", Content: "Dinner", CreatedAt: now},
		{ID: "post-1", UserID: "viewer", Content: "Lunch", CreatedAt: now.Add(-time.Hour)},
	}

	feedRepo.On("GetFollowingIDs", "viewer").Return([]string{"friend-1"}, nil)
	feedRepo.On("GetFeedPosts", []string{"friend-1", "viewer"}, 20, 0).Return(posts, nil)
	feedRepo.On("CountFeedPosts", []string{"friend-1", "viewer"}).Return(int64(2), nil)
	feedRepo.On("GetLikeCounts", []string{"post-2", "post-1"}).Return(map[string]int64{"post-2": 3}, nil)
	feedRepo.On("GetCommentCounts", []string{"post-2", "post-1"}).Return(map[string]int64{"post-1": 1}, nil)
	feedRepo.On("GetLikedPostIDs", "viewer", []string{"post-2", "post-1"}).Return([]string{"post-2"}, nil)
	feedRepo.On("GetUsernames", mock.AnythingOfType("[]string")).Return(map[string]string{"friend-1": "alice_fit", "viewer": "bob_macros"}, nil)

	result, total, err := uc.GetFeed("viewer", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, result, 2)

	assert.Equal(t, "post-2", result[0].ID)
	assert.Equal(t, int64(3), result[0].LikeCount)
	assert.Equal(t, int64(0), result[0].CommentCount)
	assert.True(t, result[0].IsLiked)
	assert.Equal(t, "alice_fit", result[0].Username)

	assert.Equal(t, "post-1", result[1].ID)
	assert.Equal(t, int64(0), result[1].LikeCount)
	assert.Equal(t, int64(1), result[1].CommentCount)
	assert.False(t, result[1].IsLiked)

	feedRepo.AssertExpectations(t)
}

func TestGetFeed_PageSizeClampedTo100(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	uc := NewFeedUseCase(feedRepo, logger.New())

	feedRepo.On("GetFollowingIDs", "viewer").Return([]string{}, nil)
	feedRepo.On("GetFeedPosts", []string{"viewer"}, 100, 0).Return([]*entity.FeedPost{}, nil)
	feedRepo.On("CountFeedPosts", []string{"viewer"}).Return(int64(0), nil)

	result, total, err := uc.GetFeed("viewer", 0, 1000)

	assert.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, int64(0), total)
	feedRepo.AssertExpectations(t)
}

func TestGetFeed_SecondPageOffset(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	uc := NewFeedUseCase(feedRepo, logger.New())

	feedRepo.On("GetFollowingIDs", "viewer").Return([]string{"friend-1"}, nil)
	feedRepo.On("GetFeedPosts", []string{"friend-1", "viewer"}, 10, 10).Return([]*entity.FeedPost{}, nil)
	feedRepo.On("CountFeedPosts", []string{"friend-1", "viewer"}).Return(int64(10), nil)

	result, total, err := uc.GetFeed("viewer", 2, 10)

	assert.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, int64(10), total)
	feedRepo.AssertExpectations(t)
}

func TestGetFeed_NoFollowsStillSeesOwnPosts(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	uc := NewFeedUseCase(feedRepo, logger.New())

	posts := []*entity.FeedPost{{ID: "post-1", UserID: "viewer", Content: "Solo meal prep"}}

	feedRepo.On("GetFollowingIDs", "viewer").Return([]string{}, nil)
	feedRepo.On("GetFeedPosts", []string{"viewer"}, 20, 0).Return(posts, nil)
	feedRepo.On("CountFeedPosts", []string{"viewer"}).Return(int64(1), nil)
	feedRepo.On("GetLikeCounts", []string{"post-1"}).Return(map[string]int64{}, nil)
	feedRepo.On("GetCommentCounts", []string{"post-1"}).Return(map[string]int64{}, nil)
	feedRepo.On("GetLikedPostIDs", "viewer", []string{"post-1"}).Return([]string{}, nil)
	feedRepo.On("GetUsernames", []string{"viewer"}).Return(map[string]string{"viewer": "bob_macros"}, nil)

	result, total, err := uc.GetFeed("viewer", 1, 20)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "viewer", result[0].UserID)
}

func TestGetFeed_UsernameLookupFailureIsNonFatal(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	uc := NewFeedUseCase(feedRepo, logger.New())

	posts := []*entity.FeedPost{{ID: "post-1", UserID: "friend-1", Content: "Salad"}}

	feedRepo.On("GetFollowingIDs", "viewer").Return([]string{"friend-1"}, nil)
	feedRepo.On("GetFeedPosts", []string{"friend-1", "viewer"}, 20, 0).Return(posts, nil)
	feedRepo.On("CountFeedPosts", []string{"friend-1", "viewer"}).Return(int64(1), nil)
	feedRepo.On("GetLikeCounts", []string{"post-1"}).Return(map[string]int64{}, nil)
	feedRepo.On("GetCommentCounts", []string{"post-1"}).Return(map[string]int64{}, nil)
	feedRepo.On("GetLikedPostIDs", "viewer", []string{"post-1"}).Return([]string{}, nil)
	feedRepo.On("GetUsernames", []string{"friend-1"}).Return(nil, assert.AnError)

	result, _, err := uc.GetFeed("viewer", 1, 20)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Empty(t, result[0].Username)
}
