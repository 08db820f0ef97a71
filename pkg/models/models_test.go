package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
		IsActive: true,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:       existingID,
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestPost_BeforeCreate(t *testing.T) {
	post := &Post{
		UserID:  "author-123",
		Content: "Day 12 of the keto plan, down 2kg",
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
}

func TestComment_BeforeCreate(t *testing.T) {
	comment := &Comment{
		PostID:  "post-123",
		UserID:  "user-123",
		Content: "Great progress!",
	}

	err := comment.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
}

func TestLike_BeforeCreate(t *testing.T) {
	like := &Like{
		UserID: "user-123",
		PostID: "post-123",
	}

	err := like.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, like.ID)
}

func TestFollow_BeforeCreate(t *testing.T) {
	follow := &Follow{
		FollowerID: "viewer-123",
		FolloweeID: "creator-123",
	}

	err := follow.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, follow.ID)
}

func TestNotification_BeforeCreate(t *testing.T) {
	notification := &Notification{
		UserID:  "user-123",
		Title:   "New Like",
		Message: "someone liked your post",
		Type:    NotificationTypeLike,
	}

	err := notification.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, notification.ID)
}

func TestNotificationType_Constants(t *testing.T) {
	assert.Equal(t, NotificationType("like"), NotificationTypeLike)
	assert.Equal(t, NotificationType("comment"), NotificationTypeComment)
	assert.Equal(t, NotificationType("follow"), NotificationTypeFollow)
	assert.Equal(t, NotificationType("other"), NotificationTypeOther)
}

func TestContentLengthLimits(t *testing.T) {
	assert.Equal(t, 2000, MaxPostContentLength)
	assert.Equal(t, 1000, MaxCommentContentLength)
}
