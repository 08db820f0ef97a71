package http

import (
	"errors"
	"net/http"

	"nutrigram/pkg/logger"
	"nutrigram/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddComment godoc
// @Summary      Add a comment to a post
// @Description  Comment on a post (max 1000 characters)
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body AddCommentRequest true "Comment content"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{post_id}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.AddComment(postID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrEmptyContent), errors.Is(err, usecase.ErrContentTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to add comment: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// GetComments godoc
// @Summary      Get comments of a post
// @Description  Get paginated comments for a post, newest first
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Param        page query int false "Page number (1-based)"
// @Param        page_size query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts/{post_id}/comments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID := c.Param("post_id")
	page, pageSize := pageParams(c)

	comments, total, err := h.commentUseCase.GetComments(postID, page, pageSize)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.logger.Error("Failed to get comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "total": total, "page": page})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Soft-delete a comment. Only the author may delete it.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        comment_id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /comments/{comment_id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("comment_id")
	userID := c.GetString("user_id")

	if err := h.commentUseCase.DeleteComment(commentID, userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to delete comment: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
