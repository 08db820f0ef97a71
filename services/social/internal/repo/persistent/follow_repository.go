package persistent

import (
	"nutrigram/services/social/internal/model"

	"gorm.io/gorm"
)

type FollowRepository interface {
	CreateFollow(followerID, followeeID string) error
	DeleteFollow(followerID, followeeID string) (bool, error)
	IsFollowing(followerID, followeeID string) (bool, error)
	GetFollowerIDs(userID string, limit, offset int) ([]string, error)
	GetFollowingIDs(userID string, limit, offset int) ([]string, error)
	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// CreateFollow makes the edge for the pair active: it reactivates a
// soft-deleted edge if one exists, otherwise inserts. Same race shape as
// CreateLike: the conditional update lets through exactly one concurrent
// caller, and the other hits the partial unique index on insert, so a lost
// race is always a unique violation the caller can remap.
func (r *followRepository) CreateFollow(followerID, followeeID string) error {
	res := r.db.Unscoped().Model(&model.FollowModel{}).
		Where("follower_id = ? AND followee_id = ? AND deleted_at IS NOT NULL", followerID, followeeID).
		Updates(map[string]interface{}{"deleted_at": nil, "updated_at": gorm.Expr("NOW()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	followModel := &model.FollowModel{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	return r.db.Create(followModel).Error
}

func (r *followRepository) DeleteFollow(followerID, followeeID string) (bool, error) {
	result := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&model.FollowModel{})
	return result.RowsAffected > 0, result.Error
}

func (r *followRepository) IsFollowing(followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) GetFollowerIDs(userID string, limit, offset int) ([]string, error) {
	var ids []string
	query := r.db.Model(&model.FollowModel{}).
		Where("followee_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *followRepository) GetFollowingIDs(userID string, limit, offset int) ([]string, error) {
	var ids []string
	query := r.db.Model(&model.FollowModel{}).
		Where("follower_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *followRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
