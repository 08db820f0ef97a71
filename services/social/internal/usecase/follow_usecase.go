package usecase

import (
	"fmt"

	"nutrigram/pkg/logger"
	"nutrigram/services/social/internal/repo/persistent"
)

// NotificationPublisher is the slice of the queue client the usecases need.
type NotificationPublisher interface {
	PublishNotificationTask(task map[string]interface{}) error
}

type FollowUseCase interface {
	ToggleFollow(followerID, followeeID string) (bool, error)
	IsFollowing(followerID, followeeID string) (bool, error)
	GetFollowers(userID string, limit, offset int) ([]string, int64, error)
	GetFollowing(userID string, limit, offset int) ([]string, int64, error)
}

type followUseCase struct {
	followRepo persistent.FollowRepository
	userRepo   persistent.UserRepository
	publisher  NotificationPublisher
	logger     *logger.Logger
}

func NewFollowUseCase(
	followRepo persistent.FollowRepository,
	userRepo persistent.UserRepository,
	publisher NotificationPublisher,
	logger *logger.Logger,
) FollowUseCase {
	return &followUseCase{
		followRepo: followRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// ToggleFollow follows followeeID if no active edge exists, otherwise
// unfollows. Returns the resulting state: true when following.
func (uc *followUseCase) ToggleFollow(followerID, followeeID string) (bool, error) {
	if followerID == followeeID {
		return false, ErrCannotFollowSelf
	}

	exists, err := uc.userRepo.UserExists(followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return false, ErrUserNotFound
	}

	isFollowing, err := uc.followRepo.IsFollowing(followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow status: %w", err)
	}

	if isFollowing {
		if _, err := uc.followRepo.DeleteFollow(followerID, followeeID); err != nil {
			uc.logger.Error("Failed to delete follow: %v", err)
			return false, fmt.Errorf("failed to unfollow: %w", err)
		}
		return false, nil
	}

	if err := uc.followRepo.CreateFollow(followerID, followeeID); err != nil {
		if persistent.IsUniqueViolation(err) {
			// A concurrent toggle already created the edge; same outcome.
			return true, nil
		}
		uc.logger.Error("Failed to create follow: %v", err)
		return false, fmt.Errorf("failed to follow: %w", err)
	}

	if uc.publisher != nil {
		go func() {
			task := map[string]interface{}{
				"type":        "follow",
				"user_id":     followeeID,
				"follower_id": followerID,
				"priority":    4,
			}
			if err := uc.publisher.PublishNotificationTask(task); err != nil {
				uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish follow notification task: %v", err)
			}
		}()
	}

	return true, nil
}

func (uc *followUseCase) IsFollowing(followerID, followeeID string) (bool, error) {
	return uc.followRepo.IsFollowing(followerID, followeeID)
}

func (uc *followUseCase) GetFollowers(userID string, limit, offset int) ([]string, int64, error) {
	ids, err := uc.followRepo.GetFollowerIDs(userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get followers: %w", err)
	}
	total, err := uc.followRepo.CountFollowers(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return ids, total, nil
}

func (uc *followUseCase) GetFollowing(userID string, limit, offset int) ([]string, int64, error) {
	ids, err := uc.followRepo.GetFollowingIDs(userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get following: %w", err)
	}
	total, err := uc.followRepo.CountFollowing(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count following: %w", err)
	}
	return ids, total, nil
}
