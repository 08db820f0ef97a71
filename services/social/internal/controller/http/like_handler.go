package http

import (
	"errors"
	"net/http"

	"nutrigram/pkg/logger"
	"nutrigram/services/social/internal/usecase"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeUseCase usecase.LikeUseCase
	logger      *logger.Logger
}

func NewLikeHandler(likeUseCase usecase.LikeUseCase, logger *logger.Logger) *LikeHandler {
	return &LikeHandler{
		likeUseCase: likeUseCase,
		logger:      logger,
	}
}

// ToggleLike godoc
// @Summary      Toggle like on a post
// @Description  Like a post, or remove the like if the post is already liked
// @Tags         likes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /social/posts/{post_id}/like [post]
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	liked, err := h.likeUseCase.ToggleLike(userID, postID)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			h.logger.Error("Failed to toggle like: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		}
		return
	}

	if liked {
		c.JSON(http.StatusOK, gin.H{"message": "Post liked", "liked": true})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Post unliked", "liked": false})
	}
}

// GetLikeCount godoc
// @Summary      Get like count for a post
// @Description  Get the number of likes for a post (from Redis cache first, fallback to DB)
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /social/posts/{post_id}/likes [get]
func (h *LikeHandler) GetLikeCount(c *gin.Context) {
	postID := c.Param("post_id")

	count, err := h.likeUseCase.GetLikeCount(postID)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.logger.Error("Failed to get like count: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get like count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "likes_count": count})
}

// IsLiked godoc
// @Summary      Check if user liked a post
// @Description  Check if the authenticated user has liked a specific post
// @Tags         likes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /social/posts/{post_id}/liked [get]
func (h *LikeHandler) IsLiked(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	isLiked, err := h.likeUseCase.IsLiked(userID, postID)
	if err != nil {
		h.logger.Error("Failed to check like status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check like status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "liked": isLiked})
}
