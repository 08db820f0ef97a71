package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrigram/pkg/logger"
	"nutrigram/services/feed/internal/entity"
	"nutrigram/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFeedUseCase is a mock implementation of FeedUseCase
type MockFeedUseCase struct {
	mock.Mock
}

func (m *MockFeedUseCase) GetFeed(viewerID string, page, pageSize int) ([]*entity.FeedPost, int64, error) {
	args := m.Called(viewerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.FeedPost), args.Get(1).(int64), args.Error(2)
}

var _ usecase.FeedUseCase = (*MockFeedUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGetFeed_Success(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	logger := logger.New()
	handler := NewFeedHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/feed", func(c *gin.Context) {
		c.Set("user_id", "viewer")
		handler.GetFeed(c)
	})

	posts := []*entity.FeedPost{
		{ID: "post-1", UserID: "friend-1", Content: "Overnight oats", LikeCount: 2, IsLiked: true},
	}
	mockUseCase.On("GetFeed", "viewer", 1, 20).Return(posts, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(1), response["total"])
	feedPosts := response["posts"].([]interface{})
	assert.Equal(t, 1, len(feedPosts))
	first := feedPosts[0].(map[string]interface{})
	assert.Equal(t, true, first["is_liked"])
	assert.Equal(t, float64(2), first["like_count"])

	mockUseCase.AssertExpectations(t)
}

func TestGetFeed_QueryPagination(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	logger := logger.New()
	handler := NewFeedHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/feed", func(c *gin.Context) {
		c.Set("user_id", "viewer")
		handler.GetFeed(c)
	})

	mockUseCase.On("GetFeed", "viewer", 3, 50).Return([]*entity.FeedPost{}, int64(120), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed?page=3&page_size=50", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetFeed_Error(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	logger := logger.New()
	handler := NewFeedHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/feed", func(c *gin.Context) {
		c.Set("user_id", "viewer")
		handler.GetFeed(c)
	})

	mockUseCase.On("GetFeed", "viewer", 1, 20).Return(nil, int64(0), assert.AnError)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockUseCase.AssertExpectations(t)
}
