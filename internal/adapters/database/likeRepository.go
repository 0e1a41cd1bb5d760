package database

import (
	"context"

	"blogify/internal/core/apperror"
	"blogify/internal/core/like"
	"blogify/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepositoryDatabase stores like sets as (post_id, user_id) rows.
type LikeRepositoryDatabase struct {
	db *gorm.DB
}

func NewLikeRepositoryDatabase(db *gorm.DB) *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{db: db}
}

// Toggle never reads the set back into memory: membership changes are a
// single DELETE or INSERT, so concurrent likes from different users cannot
// overwrite each other.
func (repo *LikeRepositoryDatabase) Toggle(ctx context.Context, postID, userID uuid.UUID) (bool, int64, error) {
	var (
		liked bool
		count int64
	)
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePost(tx, postID); err != nil {
			return err
		}

		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&like.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			l := &like.Like{PostID: postID, UserID: userID}
			if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error; err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&like.Like{}).Where("post_id = ?", postID).Count(&count).Error
	})
	if err != nil {
		return false, 0, translate(err, "toggle like", "Post not found")
	}
	return liked, count, nil
}

func ensurePost(tx *gorm.DB, postID uuid.UUID) error {
	var n int64
	if err := tx.Model(&post.Post{}).Where("id = ?", postID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("Post not found")
	}
	return nil
}
