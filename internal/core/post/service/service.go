package postapp

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"blogify/internal/core/apperror"
	"blogify/internal/core/ids"
	postEntity "blogify/internal/core/post"
	postPort "blogify/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository postPort.PostRepository
	Cache          postPort.Cache // optional
	Logger         *zap.Logger
	Now            func() time.Time
}

func NewPostService(postRepo postPort.PostRepository, cache postPort.Cache, logger *zap.Logger) *PostService {
	return &PostService{
		PostRepository: postRepo,
		Cache:          cache,
		Logger:         logger,
		Now:            time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, title, content, authorID string) (*postPort.PostDTO, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, apperror.Validation("Title and content are required")
	}
	if err := checkTitle(title); err != nil {
		return nil, err
	}
	uid, err := ids.Parse(authorID, "user ID")
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	p := &postEntity.Post{
		ID:        ids.New(),
		Title:     title,
		Content:   content,
		AuthorID:  uid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.PostRepository.Create(ctx, p); err != nil {
		return nil, err
	}
	s.Logger.Info("post created", zap.String("postID", p.ID.String()), zap.String("authorID", authorID))

	created, err := s.PostRepository.FindByID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("reload created post: %w", err)
	}
	return postPort.NewPostDTO(created), nil
}

// GetPost returns the full view of one post, served from the cache when possible.
func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	pid, err := ids.Parse(id, "post ID")
	if err != nil {
		return nil, err
	}
	gen := int64(-1)
	if s.Cache != nil {
		dto, g, ok := s.Cache.Get(ctx, pid.String())
		if ok {
			return dto, nil
		}
		gen = g
	}

	p, err := s.PostRepository.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	dto := postPort.NewPostDTO(p)
	if s.Cache != nil {
		s.Cache.Set(ctx, dto, gen)
	}
	return dto, nil
}

// UpdatePost applies the non-empty fields. Authorship is checked before the
// payload so non-authors always get Forbidden.
func (s *PostService) UpdatePost(ctx context.Context, id, requesterID string, fields postPort.Fields) (*postPort.PostDTO, error) {
	pid, err := s.authorize(ctx, id, requesterID, "Unauthorized - Only the author can edit this post")
	if err != nil {
		return nil, err
	}

	fields.Title = strings.TrimSpace(fields.Title)
	fields.Content = strings.TrimSpace(fields.Content)
	if err := checkTitle(fields.Title); err != nil {
		return nil, err
	}
	if !fields.Empty() {
		if err := s.PostRepository.Update(ctx, pid, fields, s.Now().UTC()); err != nil {
			return nil, err
		}
		s.invalidate(ctx, pid.String())
	}

	p, err := s.PostRepository.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(p), nil
}

func (s *PostService) DeletePost(ctx context.Context, id, requesterID string) error {
	pid, err := s.authorize(ctx, id, requesterID, "Unauthorized - Only the author can delete this post")
	if err != nil {
		return err
	}
	if err := s.PostRepository.Delete(ctx, pid); err != nil {
		return err
	}
	s.invalidate(ctx, pid.String())
	s.Logger.Info("post deleted", zap.String("postID", pid.String()), zap.String("by", requesterID))
	return nil
}

func (s *PostService) ListPosts(ctx context.Context, page postEntity.Page, sort postEntity.Sort) (*postPort.ListDTO, error) {
	return s.list(ctx, postPort.ListQuery{Page: page, Sort: sort})
}

func (s *PostService) ListUserPosts(ctx context.Context, userID string, page postEntity.Page, sort postEntity.Sort) (*postPort.ListDTO, error) {
	uid, err := ids.Parse(userID, "user ID")
	if err != nil {
		return nil, err
	}
	return s.list(ctx, postPort.ListQuery{Filter: postPort.ListFilter{AuthorID: uid}, Page: page, Sort: sort})
}

// SearchPosts matches q case-insensitively against title or content.
func (s *PostService) SearchPosts(ctx context.Context, q string, page postEntity.Page, sort postEntity.Sort) (*postPort.ListDTO, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation("Search query is required")
	}
	res, err := s.list(ctx, postPort.ListQuery{Filter: postPort.ListFilter{Search: q}, Page: page, Sort: sort})
	if err != nil {
		return nil, err
	}
	res.Query = q
	return res, nil
}

func (s *PostService) list(ctx context.Context, q postPort.ListQuery) (*postPort.ListDTO, error) {
	posts, total, err := s.PostRepository.List(ctx, q)
	if err != nil {
		return nil, err
	}
	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, postPort.NewPostDTO(p))
	}
	return &postPort.ListDTO{
		Posts:      dtos,
		Pagination: postEntity.Paginate(q.Page, total),
	}, nil
}

func (s *PostService) authorize(ctx context.Context, id, requesterID, denied string) (uuid.UUID, error) {
	pid, err := ids.Parse(id, "post ID")
	if err != nil {
		return uuid.Nil, err
	}
	requester, err := ids.Parse(requesterID, "user ID")
	if err != nil {
		return uuid.Nil, err
	}
	authorID, err := s.PostRepository.FindAuthorID(ctx, pid)
	if err != nil {
		return uuid.Nil, err
	}
	if requester != authorID {
		return uuid.Nil, apperror.Forbidden("%s", denied)
	}
	return pid, nil
}

func checkTitle(title string) error {
	if utf8.RuneCountInString(title) > postEntity.MaxTitleLength {
		return apperror.Validation("Title must be at most %d characters", postEntity.MaxTitleLength)
	}
	return nil
}

func (s *PostService) invalidate(ctx context.Context, id string) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
}
