package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorUsername string     `gorm:"size:100" json:"author_username"`
	AuthorName     string     `gorm:"size:255" json:"author_name"`
	AuthorAvatar   string     `gorm:"size:500" json:"author_avatar,omitempty"`
	Content        string     `gorm:"size:2000;not null" json:"content"`
	IsDeleted      bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
