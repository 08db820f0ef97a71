package http

import (
	"errors"
	"net/http"
	"strconv"

	"nutrigram/pkg/logger"
	"nutrigram/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Content  string `form:"content" binding:"required"`
	PostType string `form:"post_type"`
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a new post with text content and an optional image
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        content formData string true "Post content (max 2000 characters)"
// @Param        post_type formData string false "Post type (text/image/video/recipe/progress)"
// @Param        image formData file false "Image file (jpg/jpeg/png)"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Optional image; ignore the error when the field is absent
	mediaFile, _ := c.FormFile("image")

	post, err := h.postUseCase.CreatePost(userID, req.Content, req.PostType, mediaFile)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyContent), errors.Is(err, usecase.ErrContentTooLong),
			errors.Is(err, usecase.ErrInvalidPostType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPost godoc
// @Summary      Get a post by ID
// @Description  Get a single post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("post_id")

	post, err := h.postUseCase.GetPost(postID)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			h.logger.Error("Failed to get post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// ListUserPosts godoc
// @Summary      List a user's posts
// @Description  Get paginated posts of a user, newest first
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        page query int false "Page number (1-based)"
// @Param        page_size query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /users/{user_id}/posts [get]
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	userID := c.Param("user_id")
	page, pageSize := pageParams(c)

	posts, total, err := h.postUseCase.ListUserPosts(userID, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list user posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total, "page": page})
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Soft-delete a post. Only the author may delete it.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{post_id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	if err := h.postUseCase.DeletePost(postID, userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to delete post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func pageParams(c *gin.Context) (int, int) {
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

	return page, pageSize
}
