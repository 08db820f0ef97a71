package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutrigram/pkg/logger"
	"nutrigram/services/notification/internal/entity"
	"nutrigram/services/notification/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

var ErrNotificationNotFound = errors.New("notification not found")

const maxPageSize = 100

type NotificationUseCase interface {
	SendNotification(userID, title, message, notificationType, relatedEntityID, relatedEntityType string) (*entity.Notification, error)
	GetUserNotifications(userID string, page, pageSize int) ([]*entity.Notification, int64, int64, error)
	MarkRead(notificationID, userID string) error
	MarkAllRead(userID string) (int64, error)
	HandleLikeNotification(task map[string]interface{}) error
	HandleCommentNotification(task map[string]interface{}) error
	HandleFollowNotification(task map[string]interface{}) error
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	redisClient      *redis.Client
	logger           *logger.Logger
}

func NewNotificationUseCase(
	notificationRepo persistent.NotificationRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
		logger:           logger,
	}
}

// SendNotification persists an inbox row and pushes it to the user's
// redis pub/sub channel for connected clients.
func (uc *notificationUseCase) SendNotification(userID, title, message, notificationType, relatedEntityID, relatedEntityType string) (*entity.Notification, error) {
	notification := &entity.Notification{
		UserID:            userID,
		Title:             title,
		Message:           message,
		Type:              notificationType,
		RelatedEntityID:   relatedEntityID,
		RelatedEntityType: relatedEntityType,
	}

	if err := uc.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	uc.publishToRedis(notification)

	uc.logger.Info("Notification sent to user %s: %s", userID, title)
	return notification, nil
}

func (uc *notificationUseCase) GetUserNotifications(userID string, page, pageSize int) ([]*entity.Notification, int64, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	offset := (page - 1) * pageSize
	notifications, err := uc.notificationRepo.GetByUserID(userID, pageSize, offset)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	total, err := uc.notificationRepo.CountByUserID(userID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	unread, err := uc.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return notifications, total, unread, nil
}

func (uc *notificationUseCase) MarkRead(notificationID, userID string) error {
	updated, err := uc.notificationRepo.MarkRead(notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !updated {
		return ErrNotificationNotFound
	}
	return nil
}

func (uc *notificationUseCase) MarkAllRead(userID string) (int64, error) {
	count, err := uc.notificationRepo.MarkAllRead(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return count, nil
}

// HandleLikeNotification processes a like task from the queue.
func (uc *notificationUseCase) HandleLikeNotification(task map[string]interface{}) error {
	userID, _ := task["user_id"].(string)   // Author of the post (recipient)
	likerID, _ := task["liker_id"].(string) // User who liked
	postID, _ := task["post_id"].(string)

	if userID == "" || likerID == "" || postID == "" {
		// Permanently malformed: requeueing would just loop it. Drop.
		uc.logger.Error("[NOTIFICATION HANDLER] Dropping like task with missing user_id, liker_id or post_id, task=%+v", task)
		return nil
	}

	likerUsername := uc.resolveUsername(likerID)

	_, err := uc.SendNotification(
		userID,
		"New Like",
		fmt.Sprintf("%s liked your post", likerUsername),
		"like",
		postID,
		"post",
	)
	return err
}

// HandleCommentNotification processes a comment task from the queue.
func (uc *notificationUseCase) HandleCommentNotification(task map[string]interface{}) error {
	userID, _ := task["user_id"].(string)           // Author of the post (recipient)
	commenterID, _ := task["commenter_id"].(string) // User who commented
	postID, _ := task["post_id"].(string)

	if userID == "" || commenterID == "" || postID == "" {
		uc.logger.Error("[NOTIFICATION HANDLER] Dropping comment task with missing user_id, commenter_id or post_id, task=%+v", task)
		return nil
	}

	commenterUsername := uc.resolveUsername(commenterID)

	_, err := uc.SendNotification(
		userID,
		"New Comment",
		fmt.Sprintf("%s commented on your post", commenterUsername),
		"comment",
		postID,
		"post",
	)
	return err
}

// HandleFollowNotification processes a follow task from the queue.
func (uc *notificationUseCase) HandleFollowNotification(task map[string]interface{}) error {
	userID, _ := task["user_id"].(string)         // Followee (recipient)
	followerID, _ := task["follower_id"].(string) // User who followed

	if userID == "" || followerID == "" {
		uc.logger.Error("[NOTIFICATION HANDLER] Dropping follow task with missing user_id or follower_id, task=%+v", task)
		return nil
	}

	followerUsername := uc.resolveUsername(followerID)

	_, err := uc.SendNotification(
		userID,
		"New Follower",
		fmt.Sprintf("%s started following you", followerUsername),
		"follow",
		followerID,
		"user",
	)
	return err
}

func (uc *notificationUseCase) resolveUsername(userID string) string {
	username, err := uc.notificationRepo.GetUsername(userID)
	if err != nil || username == "" {
		return "Someone"
	}
	return username
}

func (uc *notificationUseCase) publishToRedis(notification *entity.Notification) {
	if uc.redisClient == nil {
		return
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		uc.logger.Error("[NOTIFICATION HANDLER] Failed to marshal notification: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	channel := fmt.Sprintf("notifications:%s", notification.UserID)
	if err := uc.redisClient.Publish(ctx, channel, notificationJSON).Err(); err != nil {
		// Live delivery is best-effort; the row is already persisted
		uc.logger.Warn("[NOTIFICATION HANDLER] Failed to publish to channel %s: %v", channel, err)
	}
}
