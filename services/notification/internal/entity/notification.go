package entity

import "time"

// Notification is a persisted inbox entry for a user.
type Notification struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	Type              string     `json:"type"`
	RelatedEntityID   string     `json:"related_entity_id,omitempty"`
	RelatedEntityType string     `json:"related_entity_type,omitempty"`
	IsRead            bool       `json:"is_read"`
	ReadAt            *time.Time `json:"read_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
