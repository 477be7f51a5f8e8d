package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username    string         `gorm:"size:100;not null;uniqueIndex" json:"username"`
	DisplayName string         `gorm:"size:255" json:"display_name"`
	Avatar      string         `gorm:"size:500" json:"avatar,omitempty"`
	Role        string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
