package like

import (
	"time"

	"blogify/internal/core/user"

	"github.com/gofrs/uuid"
)

// Like is one member of a post's like set. The composite key keeps a user
// from appearing twice.
type Like struct {
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	User      user.User `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
