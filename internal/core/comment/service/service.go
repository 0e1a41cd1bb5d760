package commentapp

import (
	"context"
	"strings"
	"time"

	"blogify/internal/core/apperror"
	commentEntity "blogify/internal/core/comment"
	"blogify/internal/core/ids"
	commentPort "blogify/internal/ports/comment"
	postPort "blogify/internal/ports/post"

	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	Cache             postPort.Cache // optional
	Logger            *zap.Logger
	Now               func() time.Time
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	cache postPort.Cache,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		Cache:             cache,
		Logger:            logger,
		Now:               time.Now,
	}
}

func (s *CommentService) AddComment(ctx context.Context, postID, userID, text string) (*commentPort.CommentDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("Comment text is required")
	}
	pid, err := ids.Parse(postID, "post ID")
	if err != nil {
		return nil, err
	}
	uid, err := ids.Parse(userID, "user ID")
	if err != nil {
		return nil, err
	}

	c := &commentEntity.Comment{
		ID:        ids.New(),
		PostID:    pid,
		UserID:    uid,
		Text:      text,
		CreatedAt: s.Now().UTC(),
	}
	created, err := s.CommentRepository.Add(ctx, c)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, pid.String())
	return commentPort.NewCommentDTO(created), nil
}

// DeleteComment is allowed for the comment's author and for the post's author.
func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID, requesterID string) error {
	pid, err := ids.Parse(postID, "post ID")
	if err != nil {
		return err
	}
	cid, err := ids.Parse(commentID, "comment ID")
	if err != nil {
		return err
	}
	requester, err := ids.Parse(requesterID, "user ID")
	if err != nil {
		return err
	}

	postAuthor, err := s.PostRepository.FindAuthorID(ctx, pid)
	if err != nil {
		return err
	}
	c, err := s.CommentRepository.FindByID(ctx, pid, cid)
	if err != nil {
		return err
	}

	isCommentAuthor := c.UserID == requester
	isPostAuthor := postAuthor == requester
	if !isCommentAuthor && !isPostAuthor {
		return apperror.Forbidden("Unauthorized - Only the comment author or post author can delete this comment")
	}

	if err := s.CommentRepository.Delete(ctx, pid, cid); err != nil {
		return err
	}
	s.invalidate(ctx, pid.String())
	s.Logger.Info("comment deleted",
		zap.String("postID", postID),
		zap.String("commentID", commentID),
		zap.String("by", requesterID),
		zap.Bool("asPostAuthor", !isCommentAuthor),
	)
	return nil
}

func (s *CommentService) invalidate(ctx context.Context, id string) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
}
