package entity

import "time"

// FeedPost is a post as it appears in a viewer's feed, annotated with
// engagement counts and the viewer's own like state.
type FeedPost struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	Content      string    `json:"content"`
	PostType     string    `json:"post_type"`
	ImageURL     string    `json:"image_url,omitempty"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	IsLiked      bool      `json:"is_liked"`
	CreatedAt    time.Time `json:"created_at"`
}
