package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxPostContentLength = 2000

// Post types. Text is the default; recipe and progress posts are the
// diet-tracking flavors.
const (
	PostTypeText     = "text"
	PostTypeImage    = "image"
	PostTypeVideo    = "video"
	PostTypeRecipe   = "recipe"
	PostTypeProgress = "progress"
)

func IsValidPostType(postType string) bool {
	switch postType {
	case PostTypeText, PostTypeImage, PostTypeVideo, PostTypeRecipe, PostTypeProgress:
		return true
	}
	return false
}

type Post struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string         `gorm:"type:varchar(2000);not null" json:"content"`
	PostType  string         `gorm:"type:varchar(20);not null;default:text" json:"post_type"`
	ImageURL  string         `json:"image_url"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign keys
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
