package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blogify/internal/core/apperror"
	"blogify/internal/core/comment"
	"blogify/internal/core/like"
	"blogify/internal/core/post"
	postPort "blogify/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscape is the LIKE escape character. A backslash would need quoting in MySQL.
const likeEscape = "!"

const likeCountExpr = "(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)"

// PostRepositoryDatabase is the gorm-backed PostRepository
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := withViews(repo.db.WithContext(ctx)).Where("posts.id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err, "find post", "Post not found")
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindAuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Select("id", "author_id").Where("id = ?", id).First(&p).Error; err != nil {
		return uuid.Nil, translate(err, "find post author", "Post not found")
	}
	return p.AuthorID, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, id uuid.UUID, fields postPort.Fields, at time.Time) error {
	changes := map[string]any{"updated_at": at}
	if fields.Title != "" {
		changes["title"] = fields.Title
	}
	if fields.Content != "" {
		changes["content"] = fields.Content
	}
	res := repo.db.WithContext(ctx).Model(&post.Post{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return fmt.Errorf("update post: %w", res.Error)
	}
	// MySQL counts changed rows, not matched ones, so zero can still mean
	// the post exists with identical values.
	if res.RowsAffected == 0 {
		return translate(ensurePost(repo.db.WithContext(ctx), id), "update post", "Post not found")
	}
	return nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&like.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("Post not found")
		}
		return nil
	})
	return translate(err, "delete post", "Post not found")
}

func (repo *PostRepositoryDatabase) List(ctx context.Context, q postPort.ListQuery) ([]*post.Post, int64, error) {
	var total int64
	if err := applyFilter(repo.db.WithContext(ctx).Model(&post.Post{}), q.Filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	posts := make([]*post.Post, 0, q.Page.Limit)
	if total == 0 {
		return posts, 0, nil
	}

	find := withViews(applyFilter(repo.db.WithContext(ctx).Model(&post.Post{}), q.Filter))
	find = applySort(find, q.Sort)
	if err := find.Offset(q.Page.Offset()).Limit(q.Page.Limit).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

// withViews preloads every association a rendered post shows.
func withViews(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.created_at ASC")
		}).
		Preload("Likes.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.User")
}

func applyFilter(db *gorm.DB, f postPort.ListFilter) *gorm.DB {
	if f.AuthorID != uuid.Nil {
		db = db.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		db = db.Where(
			"(LOWER(posts.title) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(posts.content) LIKE ? ESCAPE '"+likeEscape+"')",
			pattern, pattern,
		)
	}
	return db
}

func applySort(db *gorm.DB, s post.Sort) *gorm.DB {
	switch s {
	case post.SortOldest:
		return db.Order("posts.created_at ASC").Order("posts.id ASC")
	case post.SortMostLiked:
		return db.Order(likeCountExpr + " DESC").Order("posts.created_at DESC").Order("posts.id ASC")
	default:
		return db.Order("posts.created_at DESC").Order("posts.id ASC")
	}
}

// escapeLike makes a user query match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(s)
}
