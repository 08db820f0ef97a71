package usecase

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCannotFollowSelf = errors.New("cannot follow self")
)
