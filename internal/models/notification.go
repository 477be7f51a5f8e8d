package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification types emitted by the moderation core.
const (
	NotificationContentViolation = "content_violation"
	NotificationAppealResult     = "appeal_result"
	NotificationContentRestored  = "content_restored"
	NotificationReportUpdate     = "report_update"
)

type Notification struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReceiverID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Type         string         `gorm:"size:50;not null" json:"type"`
	RelatedID    uuid.UUID      `gorm:"type:uuid" json:"related_id"`
	RelatedModel string         `gorm:"size:50" json:"related_model"`
	Message      string         `gorm:"size:1000;not null" json:"message"`
	Metadata     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	IsRead       bool           `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt    time.Time      `json:"created_at"`
}
