package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is the minimal content row the moderation core acts on. Feed
// mechanics live elsewhere; moderation only needs the author snapshot
// and the soft-delete flags.
type Post struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorUsername string     `gorm:"size:100" json:"author_username"`
	AuthorName     string     `gorm:"size:255" json:"author_name"`
	AuthorAvatar   string     `gorm:"size:500" json:"author_avatar,omitempty"`
	Caption        string     `gorm:"size:2200" json:"caption"`
	MediaURL       string     `gorm:"size:500" json:"media_url,omitempty"`
	IsDeleted      bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
