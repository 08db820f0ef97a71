package http

import (
	"errors"
	"net/http"
	"strconv"

	"nutrigram/pkg/logger"
	"nutrigram/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

// GetNotifications godoc
// @Summary      Get notifications
// @Description  Get paginated notifications for the authenticated user, newest first
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (1-based)"
// @Param        page_size query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

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

	notifications, total, unread, err := h.notificationUseCase.GetUserNotifications(userID, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to get notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"unread_count":  unread,
		"page":          page,
	})
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Description  Mark one notification as read. Only the owner can mark it.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        notification_id path string true "Notification ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/{notification_id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID := c.Param("notification_id")
	userID := c.GetString("user_id")

	if err := h.notificationUseCase.MarkRead(notificationID, userID); err != nil {
		if errors.Is(err, usecase.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			h.logger.Error("Failed to mark notification read: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead godoc
// @Summary      Mark all notifications as read
// @Description  Mark all of the authenticated user's notifications as read
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString("user_id")

	count, err := h.notificationUseCase.MarkAllRead(userID)
	if err != nil {
		h.logger.Error("Failed to mark all notifications read: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read", "count": count})
}

type SendNotificationRequest struct {
	UserID            string `json:"user_id" binding:"required"`
	Title             string `json:"title" binding:"required"`
	Message           string `json:"message" binding:"required"`
	Type              string `json:"type" binding:"required"`
	RelatedEntityID   string `json:"related_entity_id"`
	RelatedEntityType string `json:"related_entity_type"`
}

// SendNotification godoc
// @Summary      Send a notification (internal)
// @Description  Persist and deliver a notification. For internal service calls.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request body SendNotificationRequest true "Notification"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications/send [post]
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.notificationUseCase.SendNotification(
		req.UserID, req.Title, req.Message, req.Type, req.RelatedEntityID, req.RelatedEntityType,
	)
	if err != nil {
		h.logger.Error("Failed to send notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}
