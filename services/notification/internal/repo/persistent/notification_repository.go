package persistent

import (
	"time"

	"nutrigram/services/notification/internal/entity"
	"nutrigram/services/notification/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *entity.Notification) error
	GetByUserID(userID string, limit, offset int) ([]*entity.Notification, error)
	CountByUserID(userID string) (int64, error)
	CountUnread(userID string) (int64, error)
	MarkRead(notificationID, userID string) (bool, error)
	MarkAllRead(userID string) (int64, error)
	GetUsername(userID string) (string, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *entity.Notification) error {
	notificationModel := &model.NotificationModel{
		UserID:            notification.UserID,
		Title:             notification.Title,
		Message:           notification.Message,
		Type:              notification.Type,
		RelatedEntityID:   notification.RelatedEntityID,
		RelatedEntityType: notification.RelatedEntityType,
	}
	if err := r.db.Create(notificationModel).Error; err != nil {
		return err
	}
	*notification = *ToNotificationEntity(notificationModel)
	return nil
}

func (r *notificationRepository) GetByUserID(userID string, limit, offset int) ([]*entity.Notification, error) {
	var notificationModels []model.NotificationModel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = ToNotificationEntity(&notificationModels[i])
	}
	return notifications, nil
}

func (r *notificationRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks the notification as read if it belongs to the user.
// Returns whether a row was updated.
func (r *notificationRepository) MarkRead(notificationID, userID string) (bool, error) {
	now := time.Now()
	result := r.db.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	return result.RowsAffected > 0, result.Error
}

func (r *notificationRepository) MarkAllRead(userID string) (int64, error) {
	now := time.Now()
	result := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) GetUsername(userID string) (string, error) {
	var username string
	err := r.db.Table("users").Select("username").Where("id = ?", userID).Scan(&username).Error
	if err != nil {
		return "", err
	}
	return username, nil
}
