package post

import (
	"time"

	"blogify/internal/core/comment"
	"blogify/internal/core/like"
	"blogify/internal/core/user"

	"github.com/gofrs/uuid"
)

// MaxTitleLength matches the title column width, in characters.
const MaxTitleLength = 255

type Post struct {
	ID        uuid.UUID         `gorm:"primaryKey;type:char(36)"`
	Title     string            `gorm:"type:varchar(255);not null"`
	Content   string            `gorm:"type:text;not null"`
	AuthorID  uuid.UUID         `gorm:"type:char(36);not null;index:idx_posts_author"`
	Author    user.User         `gorm:"foreignKey:AuthorID"`
	Likes     []like.Like       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments  []comment.Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"index:idx_posts_created"`
	UpdatedAt time.Time
}
