package like

import (
	"context"

	"github.com/gofrs/uuid"
)

type LikeRepository interface {
	// Toggle removes userID from the post's like set if present, adds it
	// otherwise, and reports the resulting state and set size.
	Toggle(ctx context.Context, postID, userID uuid.UUID) (liked bool, count int64, err error)
}

type ToggleResultDTO struct {
	Message    string `json:"message"`
	Liked      bool   `json:"liked"`
	LikesCount int64  `json:"likesCount"`
}
