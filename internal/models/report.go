package models

import (
	"time"

	"github.com/google/uuid"
)

type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

func (t TargetType) Valid() bool {
	return t == TargetPost || t == TargetComment
}

type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusResolved ReportStatus = "resolved"
	StatusRejected ReportStatus = "rejected"
	StatusAppealed ReportStatus = "appealed"
)

// Report is a user complaint against a post or comment. Rows are never
// physically deleted; moderation history is permanent.
type Report struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	// Reporter snapshot, denormalized at report time. Not a live reference:
	// the reporter may rename or delete their account afterwards.
	ReporterID       uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ReporterUsername string    `gorm:"size:100" json:"reporter_username"`
	ReporterName     string    `gorm:"size:255" json:"reporter_name"`
	ReporterAvatar   string    `gorm:"size:500" json:"reporter_avatar,omitempty"`

	// Immutable after creation.
	TargetType TargetType `gorm:"size:20;not null;index:idx_reports_target" json:"target_type"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_reports_target" json:"target_id"`

	Reason string       `gorm:"not null;size:100" json:"reason"`
	Status ReportStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`

	AdminNote  string     `gorm:"size:2000" json:"admin_note,omitempty"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	// Anchors the reversal window.
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	// Set to reviewed_at + the configured delay when the report resolves.
	// The pair (notify_reporter_at, reporter_notified) is the scheduler's
	// only selection predicate, hence the composite index.
	NotifyReporterAt *time.Time `gorm:"index:idx_reports_notify_due" json:"notify_reporter_at,omitempty"`
	ReporterNotified bool       `gorm:"not null;default:false;index:idx_reports_notify_due" json:"reporter_notified"`

	HasAppealed  bool       `gorm:"not null;default:false" json:"has_appealed"`
	AppealReason string     `gorm:"size:1000" json:"appeal_reason,omitempty"`
	AppealedAt   *time.Time `json:"appealed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
