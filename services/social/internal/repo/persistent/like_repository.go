package persistent

import (
	"nutrigram/services/social/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	CreateLike(userID, postID string) error
	DeleteLike(userID, postID string) (bool, error)
	IsLiked(userID, postID string) (bool, error)
	GetLikeCount(postID string) (int64, error)
	GetLikedPostIDs(userID string, postIDs []string) ([]string, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// CreateLike makes the like for the pair active: it reactivates a
// soft-deleted row if one exists, otherwise inserts. Reactivation is a
// conditional update on deleted_at, so of two concurrent callers exactly one
// changes a row; the other falls through to the insert and hits the partial
// unique index. Either way the loser gets a unique violation, never a silent
// nil, and the caller can skip counters and notifications for it.
func (r *likeRepository) CreateLike(userID, postID string) error {
	res := r.db.Unscoped().Model(&model.LikeModel{}).
		Where("user_id = ? AND post_id = ? AND deleted_at IS NOT NULL", userID, postID).
		Updates(map[string]interface{}{"deleted_at": nil, "updated_at": gorm.Expr("NOW()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	likeModel := &model.LikeModel{
		UserID: userID,
		PostID: postID,
	}
	return r.db.Create(likeModel).Error
}

// DeleteLike soft-deletes the active like for the pair. Returns whether a row
// was actually deleted so counters are only adjusted once.
func (r *likeRepository) DeleteLike(userID, postID string) (bool, error) {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.LikeModel{})
	return result.RowsAffected > 0, result.Error
}

func (r *likeRepository) IsLiked(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) GetLikeCount(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// GetLikedPostIDs returns which of postIDs the user has an active like on,
// in a single query.
func (r *likeRepository) GetLikedPostIDs(userID string, postIDs []string) ([]string, error) {
	if len(postIDs) == 0 {
		return []string{}, nil
	}

	var likedIDs []string
	err := r.db.Model(&model.LikeModel{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedIDs).Error
	if err != nil {
		return nil, err
	}
	return likedIDs, nil
}
