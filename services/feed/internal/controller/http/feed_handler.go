package http

import (
	"net/http"
	"strconv"

	"nutrigram/pkg/logger"
	"nutrigram/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	logger      *logger.Logger
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

// GetFeed godoc
// @Summary      Get the personal feed
// @Description  Get posts by followed users and yourself, newest first, with like/comment counts
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (1-based)"
// @Param        page_size query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	viewerID := c.GetString("user_id")

	page := 1
	pageSize := 20
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 {
			pageSize = s
		}
	}

	posts, total, err := h.feedUseCase.GetFeed(viewerID, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to get feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":     posts,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
