package persistent

import (
	"gorm.io/gorm"
)

// PostRepository is the read-only view of the content store this service
// needs: existence checks and author resolution for like notifications.
type PostRepository interface {
	PostExists(postID string) (bool, error)
	GetAuthorID(postID string) (string, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) PostExists(postID string) (bool, error) {
	var count int64
	err := r.db.Table("posts").Where("id = ? AND deleted_at IS NULL", postID).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) GetAuthorID(postID string) (string, error) {
	var authorID string
	err := r.db.Table("posts").Select("user_id").Where("id = ?", postID).Scan(&authorID).Error
	return authorID, err
}
