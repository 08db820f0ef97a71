package usecase

import (
	"context"
	"fmt"
	"strconv"

	"nutrigram/pkg/logger"
	"nutrigram/services/social/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

type LikeUseCase interface {
	ToggleLike(userID, postID string) (bool, error)
	GetLikeCount(postID string) (int64, error)
	IsLiked(userID, postID string) (bool, error)
}

type likeUseCase struct {
	likeRepo    persistent.LikeRepository
	postRepo    persistent.PostRepository
	redisClient *redis.Client
	publisher   NotificationPublisher
	logger      *logger.Logger
}

func NewLikeUseCase(
	likeRepo persistent.LikeRepository,
	postRepo persistent.PostRepository,
	redisClient *redis.Client,
	publisher NotificationPublisher,
	logger *logger.Logger,
) LikeUseCase {
	return &likeUseCase{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		redisClient: redisClient,
		publisher:   publisher,
		logger:      logger,
	}
}

// ToggleLike likes the post if no active like exists for the pair,
// otherwise unlikes. Returns the resulting state: true when liked.
func (uc *likeUseCase) ToggleLike(userID, postID string) (bool, error) {
	isLiked, err := uc.likeRepo.IsLiked(userID, postID)
	if err != nil {
		uc.logger.Error("Failed to check like status: %v", err)
		return false, fmt.Errorf("failed to check like status: %w", err)
	}

	ctx := context.Background()
	redisKey := fmt.Sprintf("post:likes:%s", postID)

	if isLiked {
		deleted, err := uc.likeRepo.DeleteLike(userID, postID)
		if err != nil {
			uc.logger.Error("Failed to delete like: %v", err)
			return false, fmt.Errorf("failed to unlike post: %w", err)
		}
		if deleted && uc.redisClient != nil {
			uc.redisClient.Decr(ctx, redisKey)
		}
		return false, nil
	}

	exists, err := uc.postRepo.PostExists(postID)
	if err != nil {
		return false, fmt.Errorf("failed to look up post: %w", err)
	}
	if !exists {
		return false, ErrPostNotFound
	}

	if err := uc.likeRepo.CreateLike(userID, postID); err != nil {
		if persistent.IsUniqueViolation(err) {
			// A concurrent toggle already inserted the active row; the winner
			// adjusted the counter and notified, so just report the state.
			return true, nil
		}
		uc.logger.Error("Failed to create like: %v", err)
		return false, fmt.Errorf("failed to like post: %w", err)
	}

	if uc.redisClient != nil {
		uc.redisClient.Incr(ctx, redisKey)
	}

	authorID, err := uc.postRepo.GetAuthorID(postID)
	if err == nil && authorID != userID && uc.publisher != nil {
		go func() {
			task := map[string]interface{}{
				"type":     "like",
				"user_id":  authorID,
				"liker_id": userID,
				"post_id":  postID,
				"priority": 3,
			}
			if err := uc.publisher.PublishNotificationTask(task); err != nil {
				uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish like notification task: %v", err)
			}
		}()
	}

	return true, nil
}

func (uc *likeUseCase) GetLikeCount(postID string) (int64, error) {
	// Deleted posts take their like counts out of reach with them; checking
	// first also keeps a stale count from being backfilled into redis.
	exists, err := uc.postRepo.PostExists(postID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up post: %w", err)
	}
	if !exists {
		return 0, ErrPostNotFound
	}

	ctx := context.Background()
	redisKey := fmt.Sprintf("post:likes:%s", postID)

	if uc.redisClient != nil {
		countStr, err := uc.redisClient.Get(ctx, redisKey).Result()
		if err == nil {
			count, _ := strconv.ParseInt(countStr, 10, 64)
			return count, nil
		}
	}

	count, err := uc.likeRepo.GetLikeCount(postID)
	if err != nil {
		return 0, fmt.Errorf("failed to get like count: %w", err)
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, redisKey, count, 0)
	}
	return count, nil
}

func (uc *likeUseCase) IsLiked(userID, postID string) (bool, error) {
	return uc.likeRepo.IsLiked(userID, postID)
}
