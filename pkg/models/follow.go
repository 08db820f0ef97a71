package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge follower -> followee. Unfollow soft-deletes the
// edge; a later follow reactivates it. Active-pair uniqueness and the
// no-self-follow rule are enforced in the schema (migration 000003).
type Follow struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID string         `gorm:"type:uuid;not null;index" json:"follower_id"`
	FolloweeID string         `gorm:"type:uuid;not null;index" json:"followee_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign keys
	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"-"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
