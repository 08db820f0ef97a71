package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like rows are soft-deleted on unlike and reactivated on re-like.
// A partial unique index on (user_id, post_id) WHERE deleted_at IS NULL
// guarantees at most one active like per pair (migration 000002).
type Like struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	PostID    string         `gorm:"type:uuid;not null;index" json:"post_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign keys
	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
