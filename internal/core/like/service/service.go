package likeapp

import (
	"context"

	"blogify/internal/core/ids"
	likePort "blogify/internal/ports/like"
	postPort "blogify/internal/ports/post"

	"go.uber.org/zap"
)

type LikeService struct {
	LikeRepository likePort.LikeRepository
	Cache          postPort.Cache // optional
	Logger         *zap.Logger
}

func NewLikeService(likeRepo likePort.LikeRepository, cache postPort.Cache, logger *zap.Logger) *LikeService {
	return &LikeService{
		LikeRepository: likeRepo,
		Cache:          cache,
		Logger:         logger,
	}
}

// ToggleLike flips userID's membership in the post's like set. Two calls in a
// row always return to the starting state.
func (s *LikeService) ToggleLike(ctx context.Context, postID, userID string) (*likePort.ToggleResultDTO, error) {
	pid, err := ids.Parse(postID, "post ID")
	if err != nil {
		return nil, err
	}
	uid, err := ids.Parse(userID, "user ID")
	if err != nil {
		return nil, err
	}

	liked, count, err := s.LikeRepository.Toggle(ctx, pid, uid)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, pid.String())
	}
	s.Logger.Debug("like toggled", zap.String("postID", postID), zap.String("userID", userID), zap.Bool("liked", liked))

	msg := "Post unliked"
	if liked {
		msg = "Post liked"
	}
	return &likePort.ToggleResultDTO{Message: msg, Liked: liked, LikesCount: count}, nil
}
