package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"nutrigram/pkg/logger"
	"nutrigram/pkg/models"
	"nutrigram/pkg/s3"
	"nutrigram/services/post/internal/entity"
	"nutrigram/services/post/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type PostUseCase interface {
	CreatePost(userID, content, postType string, mediaFile *multipart.FileHeader) (*entity.Post, error)
	GetPost(postID string) (*entity.Post, error)
	ListUserPosts(userID string, page, pageSize int) ([]*entity.Post, int64, error)
	DeletePost(postID, requesterID string) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	s3Client    *s3.Client
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	s3Client *s3.Client,
	redisClient *redis.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		s3Client:    s3Client,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *postUseCase) CreatePost(userID, content, postType string, mediaFile *multipart.FileHeader) (*entity.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > models.MaxPostContentLength {
		return nil, ErrContentTooLong
	}

	if postType == "" {
		postType = models.PostTypeText
		if mediaFile != nil {
			postType = models.PostTypeImage
		}
	}
	if !models.IsValidPostType(postType) {
		return nil, ErrInvalidPostType
	}

	var imageURL string
	if mediaFile != nil && uc.s3Client != nil {
		src, err := mediaFile.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer src.Close()

		fileKey := fmt.Sprintf("posts/%s/%s%s", userID, uuid.New().String(), getFileExtension(mediaFile.Filename))
		contentType := mediaFile.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		uploadedURL, err := uc.s3Client.UploadFile(fileKey, src, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload file to S3: %w", err)
		}
		imageURL = uploadedURL
	}

	post := &entity.Post{
		UserID:   userID,
		Content:  content,
		PostType: postType,
		ImageURL: imageURL,
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.cachePost(post)

	return post, nil
}

func (uc *postUseCase) GetPost(postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (uc *postUseCase) ListUserPosts(userID string, page, pageSize int) ([]*entity.Post, int64, error) {
	limit, offset := normalizePage(page, pageSize)

	posts, err := uc.postRepo.GetByUserID(userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	total, err := uc.postRepo.CountByUserID(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return posts, total, nil
}

func (uc *postUseCase) DeletePost(postID, requesterID string) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return ErrPostNotFound
		}
		return err
	}

	if post.UserID != requesterID {
		return ErrForbidden
	}

	if err := uc.postRepo.Delete(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if uc.redisClient != nil {
		ctx := context.Background()
		uc.redisClient.Del(ctx, fmt.Sprintf("post:%s", postID))
	}

	return nil
}

func (uc *postUseCase) cachePost(post *entity.Post) {
	if uc.redisClient == nil {
		return
	}

	ctx := context.Background()
	postKey := fmt.Sprintf("post:%s", post.ID)
	postData := map[string]interface{}{
		"id":        post.ID,
		"user_id":   post.UserID,
		"content":   post.Content,
		"post_type": post.PostType,
		"image_url": post.ImageURL,
	}

	for k, v := range postData {
		uc.redisClient.HSet(ctx, postKey, k, v)
	}
	uc.redisClient.Expire(ctx, postKey, 24*time.Hour)
}

// normalizePage converts 1-based page/pageSize into limit/offset,
// clamping pageSize to 100.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}

func getFileExtension(filename string) string {
	if len(filename) == 0 {
		return ""
	}
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
