package comment

import (
	"context"
	"time"

	"blogify/internal/core/comment"
	userPort "blogify/internal/ports/user"

	"github.com/gofrs/uuid"
)

type CommentRepository interface {
	// Add appends c to its post. Fails with not found when the post is gone.
	Add(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, postID, commentID uuid.UUID) (*comment.Comment, error)
	Delete(ctx context.Context, postID, commentID uuid.UUID) error
}

type CommentDTO struct {
	ID        string               `json:"id"`
	User      *userPort.SummaryDTO `json:"user"`
	Text      string               `json:"text"`
	CreatedAt time.Time            `json:"createdAt"`
}

func NewCommentDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		User:      userPort.NewSummaryDTO(c.UserID, c.User),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
