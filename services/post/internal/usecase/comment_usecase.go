package usecase

import (
	"fmt"
	"strings"

	"nutrigram/pkg/logger"
	"nutrigram/pkg/models"
	"nutrigram/services/post/internal/entity"
	"nutrigram/services/post/internal/repo/persistent"
)

// NotificationPublisher is the slice of the queue client the usecases need.
type NotificationPublisher interface {
	PublishNotificationTask(task map[string]interface{}) error
}

type CommentUseCase interface {
	AddComment(postID, userID, content string) (*entity.Comment, error)
	DeleteComment(commentID, requesterID string) error
	GetComments(postID string, page, pageSize int) ([]*entity.Comment, int64, error)
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	postRepo    persistent.PostRepository
	publisher   NotificationPublisher
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	postRepo persistent.PostRepository,
	publisher NotificationPublisher,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *commentUseCase) AddComment(postID, userID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > models.MaxCommentContentLength {
		return nil, ErrContentTooLong
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to look up post: %w", err)
	}

	comment := &entity.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	if err := uc.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if post.UserID != userID && uc.publisher != nil {
		go func() {
			task := map[string]interface{}{
				"type":         "comment",
				"user_id":      post.UserID,
				"commenter_id": userID,
				"post_id":      postID,
				"comment_id":   comment.ID,
				"priority":     3,
			}
			if err := uc.publisher.PublishNotificationTask(task); err != nil {
				uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish comment notification task: %v", err)
			}
		}()
	}

	return comment, nil
}

func (uc *commentUseCase) DeleteComment(commentID, requesterID string) error {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != requesterID {
		return ErrForbidden
	}

	deleted, err := uc.commentRepo.Delete(commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if !deleted {
		return ErrCommentNotFound
	}
	return nil
}

func (uc *commentUseCase) GetComments(postID string, page, pageSize int) ([]*entity.Comment, int64, error) {
	// Deleted posts take their comments out of reach with them.
	if _, err := uc.postRepo.GetByID(postID); err != nil {
		if persistent.IsNotFound(err) {
			return nil, 0, ErrPostNotFound
		}
		return nil, 0, fmt.Errorf("failed to look up post: %w", err)
	}

	limit, offset := normalizePage(page, pageSize)

	comments, err := uc.commentRepo.GetByPostID(postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get comments: %w", err)
	}

	total, err := uc.commentRepo.CountByPostID(postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return comments, total, nil
}
