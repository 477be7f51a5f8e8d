package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
}

type UpdateReportStatusRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note,omitempty"`
}

type UpdateReportStatusResponse struct {
	ID                   uuid.UUID `json:"id"`
	Status               string    `json:"status"`
	Message              string    `json:"message"`
	TargetDeleted        bool      `json:"target_deleted"`
	TotalReportsResolved int64     `json:"total_reports_resolved,omitempty"`
}

type ResolveAppealRequest struct {
	// Pointer so a missing field is distinguishable from an explicit
	// rejection.
	Accepted  *bool  `json:"accepted"`
	AdminNote string `json:"admin_note,omitempty"`
}

type ResolveAppealResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ContentRestored bool   `json:"content_restored"`
}

type ReverseDecisionRequest struct {
	Reason string `json:"reason"`
}

type ReverseDecisionResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message"`
	TargetRestored       bool   `json:"target_restored"`
	TotalReportsReversed int64  `json:"total_reports_reversed"`
}

type TargetAuthor struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Username    string     `json:"username,omitempty"`
	DisplayName string     `json:"display_name"`
	Avatar      string     `json:"avatar,omitempty"`
}

// ReportTargetResponse is either the live target or a tombstone
// (IsDeleted true, nil content) when the target row is gone.
type ReportTargetResponse struct {
	TargetType string       `json:"target_type"`
	TargetID   uuid.UUID    `json:"target_id"`
	IsDeleted  bool         `json:"is_deleted"`
	Author     TargetAuthor `json:"author"`
	Content    *string      `json:"content"`
	MediaURL   *string      `json:"media_url,omitempty"`
	CreatedAt  *time.Time   `json:"created_at,omitempty"`
}
