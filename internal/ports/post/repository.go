package post

import (
	"context"
	"time"

	"blogify/internal/core/post"
	commentPort "blogify/internal/ports/comment"
	userPort "blogify/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository owns post documents
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	// FindByID loads the post with author, likes and comments resolved.
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	FindAuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	// Update writes the non-empty fields and stamps updatedAt with at.
	Update(ctx context.Context, id uuid.UUID, fields Fields, at time.Time) error
	// Delete removes the post together with its comments and likes.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q ListQuery) ([]*post.Post, int64, error)
}

// Fields holds a partial update; empty values are left untouched.
type Fields struct {
	Title   string
	Content string
}

func (f Fields) Empty() bool { return f.Title == "" && f.Content == "" }

// ListFilter narrows a listing. The zero value matches every post.
type ListFilter struct {
	AuthorID uuid.UUID
	Search   string
}

type ListQuery struct {
	Filter ListFilter
	Page   post.Page
	Sort   post.Sort
}

// Cache keeps rendered single-post views. Implementations must treat every
// failure as a miss.
type Cache interface {
	// Get returns the view, or on a miss the generation the caller must pass
	// to Set after loading the post.
	Get(ctx context.Context, id string) (*PostDTO, int64, bool)
	// Set is a no-op when the post was invalidated after gen was read.
	Set(ctx context.Context, dto *PostDTO, gen int64)
	Invalidate(ctx context.Context, id string)
}

type PostDTO struct {
	ID            string                    `json:"id"`
	Title         string                    `json:"title"`
	Content       string                    `json:"content"`
	Author        *userPort.SummaryDTO      `json:"author"`
	Likes         []*userPort.SummaryDTO    `json:"likes"`
	LikesCount    int                       `json:"likesCount"`
	Comments      []*commentPort.CommentDTO `json:"comments"`
	CommentsCount int                       `json:"commentsCount"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}

type ListDTO struct {
	Posts      []*PostDTO      `json:"posts"`
	Query      string          `json:"query,omitempty"`
	Pagination post.Pagination `json:"pagination"`
}

func NewPostDTO(p *post.Post) *PostDTO {
	dto := &PostDTO{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		Author:    userPort.NewSummaryDTO(p.AuthorID, p.Author),
		Likes:     make([]*userPort.SummaryDTO, 0, len(p.Likes)),
		Comments:  make([]*commentPort.CommentDTO, 0, len(p.Comments)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, l := range p.Likes {
		dto.Likes = append(dto.Likes, userPort.NewSummaryDTO(l.UserID, l.User))
	}
	for i := range p.Comments {
		dto.Comments = append(dto.Comments, commentPort.NewCommentDTO(&p.Comments[i]))
	}
	dto.LikesCount = len(dto.Likes)
	dto.CommentsCount = len(dto.Comments)
	return dto
}
