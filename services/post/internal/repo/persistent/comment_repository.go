package persistent

import (
	"nutrigram/services/post/internal/entity"
	"nutrigram/services/post/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	GetByPostID(postID string, limit, offset int) ([]*entity.Comment, error)
	CountByPostID(postID string) (int64, error)
	Delete(id string) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := &model.CommentModel{
		PostID:  comment.PostID,
		UserID:  comment.UserID,
		Content: comment.Content,
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) GetByPostID(postID string, limit, offset int) ([]*entity.Comment, error) {
	var commentModels []model.CommentModel
	query := r.db.Where("post_id = ?", postID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&commentModels).Error; err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

func (r *commentRepository) CountByPostID(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.CommentModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// Delete soft-deletes the comment. Returns whether a row was actually
// deleted so a repeated delete can be reported as not found.
func (r *commentRepository) Delete(id string) (bool, error) {
	result := r.db.Delete(&model.CommentModel{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
