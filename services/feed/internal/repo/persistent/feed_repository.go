package persistent

import (
	"time"

	"nutrigram/services/feed/internal/entity"

	"gorm.io/gorm"
)

type FeedRepository interface {
	GetFollowingIDs(userID string) ([]string, error)
	GetFeedPosts(authorIDs []string, limit, offset int) ([]*entity.FeedPost, error)
	CountFeedPosts(authorIDs []string) (int64, error)
	GetLikeCounts(postIDs []string) (map[string]int64, error)
	GetCommentCounts(postIDs []string) (map[string]int64, error)
	GetLikedPostIDs(userID string, postIDs []string) ([]string, error)
	GetUsernames(userIDs []string) (map[string]string, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) GetFollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Table("follows").
		Where("follower_id = ? AND deleted_at IS NULL", userID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetFeedPosts returns active posts by the given authors, newest first.
// Ties on created_at are broken by id so pagination is stable.
func (r *feedRepository) GetFeedPosts(authorIDs []string, limit, offset int) ([]*entity.FeedPost, error) {
	if len(authorIDs) == 0 {
		return []*entity.FeedPost{}, nil
	}

	var rows []struct {
		ID        string
		UserID    string
		Content   string
		PostType  string
		ImageURL  string
		CreatedAt time.Time
	}

	err := r.db.Table("posts").
		Select("id, user_id, content, post_type, image_url, created_at").
		Where("user_id IN ? AND deleted_at IS NULL", authorIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.FeedPost, len(rows))
	for i, row := range rows {
		posts[i] = &entity.FeedPost{
			ID:        row.ID,
			UserID:    row.UserID,
			Content:   row.Content,
			PostType:  row.PostType,
			ImageURL:  row.ImageURL,
			CreatedAt: row.CreatedAt,
		}
	}
	return posts, nil
}

func (r *feedRepository) CountFeedPosts(authorIDs []string) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.Table("posts").
		Where("user_id IN ? AND deleted_at IS NULL", authorIDs).
		Count(&count).Error
	return count, err
}

// GetLikeCounts counts active likes for the given posts in one grouped query.
func (r *feedRepository) GetLikeCounts(postIDs []string) (map[string]int64, error) {
	return r.groupedCounts("likes", postIDs)
}

// GetCommentCounts counts active comments for the given posts in one grouped query.
func (r *feedRepository) GetCommentCounts(postIDs []string) (map[string]int64, error) {
	return r.groupedCounts("comments", postIDs)
}

func (r *feedRepository) groupedCounts(table string, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID string
		Count  int64
	}
	err := r.db.Table(table).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ? AND deleted_at IS NULL", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

// GetLikedPostIDs returns which of postIDs the user has an active like on.
func (r *feedRepository) GetLikedPostIDs(userID string, postIDs []string) ([]string, error) {
	if len(postIDs) == 0 {
		return []string{}, nil
	}

	var likedIDs []string
	err := r.db.Table("likes").
		Where("user_id = ? AND post_id IN ? AND deleted_at IS NULL", userID, postIDs).
		Pluck("post_id", &likedIDs).Error
	if err != nil {
		return nil, err
	}
	return likedIDs, nil
}

func (r *feedRepository) GetUsernames(userIDs []string) (map[string]string, error) {
	usernames := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return usernames, nil
	}

	var rows []struct {
		ID       string
		Username string
	}
	err := r.db.Table("users").
		Select("id, username").
		Where("id IN ?", userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		usernames[row.ID] = row.Username
	}
	return usernames, nil
}
