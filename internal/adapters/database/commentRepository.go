package database

import (
	"context"

	"blogify/internal/core/apperror"
	"blogify/internal/core/comment"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

// Add inserts one row; the rest of the post's comments are never rewritten.
func (repo *CommentRepositoryDatabase) Add(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePost(tx, c.PostID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", c.UserID).First(&c.User).Error
	})
	if err != nil {
		return nil, translate(err, "add comment", "User not found")
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, postID, commentID uuid.UUID) (*comment.Comment, error) {
	var c comment.Comment
	err := repo.db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&c).Error
	if err != nil {
		return nil, translate(err, "find comment", "Comment not found")
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, postID, commentID uuid.UUID) error {
	res := repo.db.WithContext(ctx).Where("id = ? AND post_id = ?", commentID, postID).Delete(&comment.Comment{})
	if res.Error != nil {
		return translate(res.Error, "delete comment", "Comment not found")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Comment not found")
	}
	return nil
}
