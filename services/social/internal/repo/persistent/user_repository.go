package persistent

import (
	"gorm.io/gorm"
)

// UserRepository is the read-only view of the identity store this service
// needs for validation.
type UserRepository interface {
	UserExists(userID string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) UserExists(userID string) (bool, error) {
	var count int64
	err := r.db.Table("users").Where("id = ? AND deleted_at IS NULL", userID).Count(&count).Error
	return count > 0, err
}
