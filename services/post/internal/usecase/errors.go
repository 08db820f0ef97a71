package usecase

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("you can only modify your own content")
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrContentTooLong  = errors.New("content exceeds maximum length")
	ErrInvalidPostType = errors.New("unknown post type")
)
