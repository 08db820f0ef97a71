package usecase

import (
	"fmt"

	"nutrigram/pkg/logger"
	"nutrigram/services/feed/internal/entity"
	"nutrigram/services/feed/internal/repo/persistent"
)

const maxPageSize = 100

type FeedUseCase interface {
	GetFeed(viewerID string, page, pageSize int) ([]*entity.FeedPost, int64, error)
}

type feedUseCase struct {
	feedRepo persistent.FeedRepository
	logger   *logger.Logger
}

func NewFeedUseCase(feedRepo persistent.FeedRepository, logger *logger.Logger) FeedUseCase {
	return &feedUseCase{
		feedRepo: feedRepo,
		logger:   logger,
	}
}

// GetFeed assembles the viewer's timeline on read: posts by the users the
// viewer follows plus their own, newest first, annotated with engagement
// counts and the viewer's like state for the returned page only.
func (uc *feedUseCase) GetFeed(viewerID string, page, pageSize int) ([]*entity.FeedPost, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	followingIDs, err := uc.feedRepo.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get following: %w", err)
	}
	authorIDs := append(followingIDs, viewerID)

	offset := (page - 1) * pageSize
	posts, err := uc.feedRepo.GetFeedPosts(authorIDs, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get feed posts: %w", err)
	}

	total, err := uc.feedRepo.CountFeedPosts(authorIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count feed posts: %w", err)
	}

	if len(posts) == 0 {
		return posts, total, nil
	}

	postIDs := make([]string, len(posts))
	authorSet := make(map[string]bool)
	for i, post := range posts {
		postIDs[i] = post.ID
		authorSet[post.UserID] = true
	}

	likeCounts, err := uc.feedRepo.GetLikeCounts(postIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get like counts: %w", err)
	}

	commentCounts, err := uc.feedRepo.GetCommentCounts(postIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get comment counts: %w", err)
	}

	likedIDs, err := uc.feedRepo.GetLikedPostIDs(viewerID, postIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get liked posts: %w", err)
	}
	liked := make(map[string]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	pageAuthors := make([]string, 0, len(authorSet))
	for id := range authorSet {
		pageAuthors = append(pageAuthors, id)
	}
	usernames, err := uc.feedRepo.GetUsernames(pageAuthors)
	if err != nil {
		// Author names are decoration; the feed is still usable without them
		uc.logger.Warn("Failed to resolve feed author usernames: %v", err)
		usernames = map[string]string{}
	}

	for _, post := range posts {
		post.LikeCount = likeCounts[post.ID]
		post.CommentCount = commentCounts[post.ID]
		post.IsLiked = liked[post.ID]
		post.Username = usernames[post.UserID]
	}

	return posts, total, nil
}
