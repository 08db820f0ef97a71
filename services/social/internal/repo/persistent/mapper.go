package persistent

import (
	"nutrigram/services/social/internal/entity"
	"nutrigram/services/social/internal/model"
)

func ToLikeEntity(m *model.LikeModel) *entity.Like {
	if m == nil {
		return nil
	}

	return &entity.Like{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToFollowEntity(m *model.FollowModel) *entity.Follow {
	if m == nil {
		return nil
	}

	return &entity.Follow{
		ID:         m.ID,
		FollowerID: m.FollowerID,
		FolloweeID: m.FolloweeID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
