package persistent

import (
	"nutrigram/services/notification/internal/entity"
	"nutrigram/services/notification/internal/model"
)

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	if m == nil {
		return nil
	}

	return &entity.Notification{
		ID:                m.ID,
		UserID:            m.UserID,
		Title:             m.Title,
		Message:           m.Message,
		Type:              m.Type,
		RelatedEntityID:   m.RelatedEntityID,
		RelatedEntityType: m.RelatedEntityType,
		IsRead:            m.IsRead,
		ReadAt:            m.ReadAt,
		CreatedAt:         m.CreatedAt,
	}
}
