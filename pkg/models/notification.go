package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeOther   NotificationType = "other"
)

type Notification struct {
	ID                string           `gorm:"type:uuid;primary_key" json:"id"`
	UserID            string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Title             string           `gorm:"not null" json:"title"`
	Message           string           `gorm:"not null" json:"message"`
	Type              NotificationType `gorm:"type:varchar(20);default:'other'" json:"type"`
	RelatedEntityID   string           `gorm:"type:uuid" json:"related_entity_id,omitempty"`
	RelatedEntityType string           `gorm:"type:varchar(20)" json:"related_entity_type,omitempty"`
	IsRead            bool             `gorm:"default:false;index" json:"is_read"`
	ReadAt            *time.Time       `json:"read_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
