package http

import (
	"errors"
	"net/http"
	"strconv"

	"nutrigram/pkg/logger"
	"nutrigram/services/social/internal/usecase"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followUseCase usecase.FollowUseCase
	logger        *logger.Logger
}

func NewFollowHandler(followUseCase usecase.FollowUseCase, logger *logger.Logger) *FollowHandler {
	return &FollowHandler{
		followUseCase: followUseCase,
		logger:        logger,
	}
}

// ToggleFollow godoc
// @Summary      Toggle follow on a user
// @Description  Follow a user, or unfollow if already following
// @Tags         follows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "User ID to follow"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /social/users/{user_id}/follow [post]
func (h *FollowHandler) ToggleFollow(c *gin.Context) {
	followeeID := c.Param("user_id")
	followerID := c.GetString("user_id")

	following, err := h.followUseCase.ToggleFollow(followerID, followeeID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCannotFollowSelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to toggle follow: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle follow"})
		}
		return
	}

	if following {
		c.JSON(http.StatusOK, gin.H{"message": "User followed", "following": true})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "User unfollowed", "following": false})
	}
}

// IsFollowing godoc
// @Summary      Check follow status
// @Description  Check if the authenticated user follows a specific user
// @Tags         follows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /social/users/{user_id}/following [get]
func (h *FollowHandler) IsFollowing(c *gin.Context) {
	followeeID := c.Param("user_id")
	followerID := c.GetString("user_id")

	following, err := h.followUseCase.IsFollowing(followerID, followeeID)
	if err != nil {
		h.logger.Error("Failed to check follow status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check follow status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": followeeID, "following": following})
}

// GetFollowers godoc
// @Summary      Get followers of a user
// @Description  Get paginated follower IDs for a user
// @Tags         follows
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        limit query int false "Number of results to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /social/users/{user_id}/followers [get]
func (h *FollowHandler) GetFollowers(c *gin.Context) {
	userID := c.Param("user_id")
	limit, offset := paginationParams(c)

	ids, total, err := h.followUseCase.GetFollowers(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get followers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": ids, "total": total, "offset": offset})
}

// GetFollowing godoc
// @Summary      Get users a user follows
// @Description  Get paginated followee IDs for a user
// @Tags         follows
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        limit query int false "Number of results to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /social/users/{user_id}/follows [get]
func (h *FollowHandler) GetFollowing(c *gin.Context) {
	userID := c.Param("user_id")
	limit, offset := paginationParams(c)

	ids, total, err := h.followUseCase.GetFollowing(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get following: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": ids, "total": total, "offset": offset})
}

func paginationParams(c *gin.Context) (int, int) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
