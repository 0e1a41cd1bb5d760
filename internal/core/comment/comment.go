package comment

import (
	"time"

	"blogify/internal/core/user"

	"github.com/gofrs/uuid"
)

// Comment belongs to exactly one post; survivors are ordered by CreatedAt.
type Comment struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index:idx_comments_post_created,priority:1"`
	UserID    uuid.UUID `gorm:"type:char(36);not null"`
	User      user.User `gorm:"foreignKey:UserID"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_comments_post_created,priority:2"`
}
