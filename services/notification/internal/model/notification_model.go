package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationModel struct {
	ID                string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID            string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Title             string         `gorm:"type:varchar(255);not null" json:"title"`
	Message           string         `gorm:"type:varchar(1000);not null" json:"message"`
	Type              string         `gorm:"type:varchar(32);not null" json:"type"`
	RelatedEntityID   string         `gorm:"type:uuid" json:"related_entity_id"`
	RelatedEntityType string         `gorm:"type:varchar(32)" json:"related_entity_type"`
	IsRead            bool           `gorm:"not null;default:false" json:"is_read"`
	ReadAt            *time.Time     `json:"read_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
