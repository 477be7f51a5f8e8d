package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/socialnet-io/socialnet-backend/internal/config"
	"github.com/socialnet-io/socialnet-backend/internal/content"
	"github.com/socialnet-io/socialnet-backend/internal/dto"
	"github.com/socialnet-io/socialnet-backend/internal/models"
	"github.com/socialnet-io/socialnet-backend/internal/notification"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrTargetNotFound = errors.New("target not found")
	ErrInvalidState   = errors.New("operation not allowed for current report status")
	ErrWindowExpired  = errors.New("report was dealt with too long ago, cannot restore")
	ErrStaleReport    = errors.New("report was changed by another admin, reload and retry")
	ErrValidation     = errors.New("invalid request")
)

// ReporterSnapshot is the denormalized reporter identity written onto
// new reports.
type ReporterSnapshot struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Avatar      string
}

// ModerationService coordinates report transitions across the report
// store, the content lifecycle and the notification dispatcher.
//
// The content mutation and the report updates form one logical unit: the
// report side runs in a store transaction, and if it fails after the
// content side already succeeded, the content mutation is compensated
// (restore after a failed resolve, re-delete after a failed reversal).
// Notifications sit outside that unit and are best-effort.
type ModerationService struct {
	reports  ReportStore
	content  content.Lifecycle
	notifier notification.Dispatcher
	cfg      *config.Config
	now      func() time.Time
}

func NewModerationService(reports ReportStore, lifecycle content.Lifecycle, notifier notification.Dispatcher, cfg *config.Config) *ModerationService {
	return &ModerationService{
		reports:  reports,
		content:  lifecycle,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// UpdateStatus is the general-purpose admin decision. Resolving removes
// the target, closes every open report against it and schedules the
// deferred reporter notice; any other status only records the decision.
func (s *ModerationService) UpdateStatus(ctx context.Context, reportID, adminID uuid.UUID, status models.ReportStatus, adminNote string) (*dto.UpdateReportStatusResponse, error) {
	if status != models.StatusResolved && status != models.StatusRejected {
		return nil, fmt.Errorf("%w: status must be resolved or rejected", ErrValidation)
	}

	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	change := ReportChange{
		Status:     status,
		AdminNote:  adminNote,
		ReviewedBy: adminID,
		ReviewedAt: now,
	}

	if status != models.StatusResolved {
		ok, err := s.reports.TransitionStatus(ctx, report.ID, report.Status, change)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrStaleReport
		}
		return &dto.UpdateReportStatusResponse{
			ID:      report.ID,
			Status:  string(status),
			Message: "Report updated, no action taken on content",
		}, nil
	}

	target, err := s.content.FindTarget(ctx, report.TargetType, report.TargetID)
	if err != nil {
		if errors.Is(err, content.ErrTargetNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	if err := s.content.SoftDelete(ctx, report.TargetType, report.TargetID); err != nil {
		return nil, err
	}

	notifyAt := now.Add(s.cfg.ReporterNotifyDelay)
	change.NotifyReporterAt = &notifyAt

	var resolved int64
	err = s.reports.Transaction(ctx, func(tx ReportStore) error {
		ok, err := tx.TransitionStatus(ctx, report.ID, report.Status, change)
		if err != nil {
			return err
		}
		if !ok {
			return ErrStaleReport
		}
		siblings, err := tx.ResolveSiblings(ctx, report.TargetType, report.TargetID, report.ID, change)
		if err != nil {
			return err
		}
		resolved = 1 + siblings
		return nil
	})
	if err != nil {
		// A concurrent admin may have resolved the same report between our
		// soft-delete and the transaction; their removal stands, so the
		// target stays hidden. Only genuine failures put it back.
		if errors.Is(err, ErrStaleReport) && s.currentStatus(ctx, report.ID) == models.StatusResolved {
			return nil, err
		}
		// The target must not stay hidden while its reports are still open.
		if _, rerr := s.content.Restore(ctx, report.TargetType, report.TargetID); rerr != nil {
			slog.Error("failed to restore target after aborted resolve",
				"report_id", report.ID, "target_id", report.TargetID, "error", rerr)
		}
		return nil, err
	}

	s.notify(ctx, target.Author.ID, models.NotificationContentViolation, report.ID,
		violationMessage(report.Reason), map[string]interface{}{
			"target_type": report.TargetType,
			"target_id":   report.TargetID,
			"reason":      report.Reason,
		})

	return &dto.UpdateReportStatusResponse{
		ID:                   report.ID,
		Status:               string(models.StatusResolved),
		Message:              fmt.Sprintf("Report resolved, target removed, %d report(s) closed", resolved),
		TargetDeleted:        true,
		TotalReportsResolved: resolved,
	}, nil
}

// ResolveAppeal settles a contested removal. Accepting restores the
// content and overturns the decision; rejecting leaves everything as
// decided. Either way the outcome is recorded on the report.
func (s *ModerationService) ResolveAppeal(ctx context.Context, reportID, adminID uuid.UUID, accepted bool, adminNote string) (*dto.ResolveAppealResponse, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.StatusAppealed {
		return nil, fmt.Errorf("%w: report is %s, appeal resolution requires appealed", ErrInvalidState, report.Status)
	}

	now := s.now()

	// Decision stands unless the appeal is accepted, in which case the
	// report ends rejected, same terminal state a reversal produces.
	newStatus := models.StatusResolved
	var restored bool
	if accepted {
		newStatus = models.StatusRejected
		restored, err = s.content.Restore(ctx, report.TargetType, report.TargetID)
		if err != nil {
			return nil, err
		}
	}

	ok, err := s.reports.TransitionStatus(ctx, report.ID, models.StatusAppealed, ReportChange{
		Status:     newStatus,
		AdminNote:  adminNote,
		ReviewedBy: adminID,
		ReviewedAt: now,
	})
	if err != nil || !ok {
		// If a concurrent admin already overturned the decision, the
		// content is meant to be visible; re-hiding it would undo them.
		if restored && s.currentStatus(ctx, report.ID) != models.StatusRejected {
			if derr := s.content.SoftDelete(ctx, report.TargetType, report.TargetID); derr != nil {
				slog.Error("failed to re-hide target after aborted appeal",
					"report_id", report.ID, "target_id", report.TargetID, "error", derr)
			}
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrStaleReport
	}

	// The author may be gone along with the target; skip the notice then.
	if target, terr := s.content.FindTarget(ctx, report.TargetType, report.TargetID); terr == nil {
		msg := msgAppealRejected
		if accepted {
			msg = msgAppealAccepted
		}
		s.notify(ctx, target.Author.ID, models.NotificationAppealResult, report.ID, msg,
			map[string]interface{}{"accepted": accepted})
	}

	msg := "Appeal rejected, original decision stands"
	if accepted {
		msg = "Appeal accepted, content restored"
	}
	return &dto.ResolveAppealResponse{
		Success:         true,
		Message:         msg,
		ContentRestored: restored,
	}, nil
}

// ReverseDecision undoes a prior removal inside the reversal window.
// Every resolved report for the target flips to rejected with an audit
// note, so a query for open reports never finds stale duplicates.
func (s *ModerationService) ReverseDecision(ctx context.Context, reportID, adminID uuid.UUID, reason string) (*dto.ReverseDecisionResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}

	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.StatusResolved {
		return nil, fmt.Errorf("%w: report is %s, only resolved decisions can be reversed", ErrInvalidState, report.Status)
	}
	if report.ReviewedAt == nil {
		return nil, fmt.Errorf("%w: report has no review timestamp", ErrInvalidState)
	}

	now := s.now()
	if now.Sub(*report.ReviewedAt) > s.cfg.ReversalWindow {
		return nil, ErrWindowExpired
	}

	restored, err := s.content.Restore(ctx, report.TargetType, report.TargetID)
	if err != nil {
		return nil, err
	}
	if !restored {
		// Nothing to put back: a reversal without a restorable target
		// cannot proceed.
		return nil, ErrTargetNotFound
	}

	auditNote := fmt.Sprintf("[%s] Admin %s: %s", now.Format("2006-01-02 15:04"), adminID, reason)

	var reversed int64
	err = s.reports.Transaction(ctx, func(tx ReportStore) error {
		n, err := tx.ReverseResolved(ctx, report.TargetType, report.TargetID, auditNote, adminID, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrStaleReport
		}
		reversed = n
		return nil
	})
	if err != nil {
		// Zero reversed rows means another admin's reversal already went
		// through; the content is rightly visible and stays that way.
		if errors.Is(err, ErrStaleReport) && s.currentStatus(ctx, report.ID) == models.StatusRejected {
			return nil, err
		}
		if derr := s.content.SoftDelete(ctx, report.TargetType, report.TargetID); derr != nil {
			slog.Error("failed to re-hide target after aborted reversal",
				"report_id", report.ID, "target_id", report.TargetID, "error", derr)
		}
		return nil, err
	}

	if target, terr := s.content.FindTarget(ctx, report.TargetType, report.TargetID); terr == nil {
		s.notify(ctx, target.Author.ID, models.NotificationContentRestored, report.ID,
			msgContentRestored, map[string]interface{}{
				"target_type": report.TargetType,
				"target_id":   report.TargetID,
			})
	}

	return &dto.ReverseDecisionResponse{
		Success:              true,
		Message:              fmt.Sprintf("Decision reversed, content restored, %d report(s) rejected", reversed),
		TargetRestored:       true,
		TotalReportsReversed: reversed,
	}, nil
}

// GetTarget loads the reported content for admin review. A hard-deleted
// target yields a tombstone instead of an error: reports outlive their
// targets and must stay reviewable.
func (s *ModerationService) GetTarget(ctx context.Context, reportID uuid.UUID) (*dto.ReportTargetResponse, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	target, err := s.content.FindTarget(ctx, report.TargetType, report.TargetID)
	if err != nil {
		if errors.Is(err, content.ErrTargetNotFound) {
			return &dto.ReportTargetResponse{
				TargetType: string(report.TargetType),
				TargetID:   report.TargetID,
				IsDeleted:  true,
				Author:     dto.TargetAuthor{DisplayName: tombstoneAuthorName},
			}, nil
		}
		return nil, err
	}

	authorID := target.Author.ID
	body := target.Body
	resp := &dto.ReportTargetResponse{
		TargetType: string(target.Type),
		TargetID:   target.ID,
		IsDeleted:  target.IsDeleted,
		Author: dto.TargetAuthor{
			ID:          &authorID,
			Username:    target.Author.Username,
			DisplayName: target.Author.DisplayName,
			Avatar:      target.Author.Avatar,
		},
		Content:   &body,
		CreatedAt: &target.CreatedAt,
	}
	if target.MediaURL != "" {
		resp.MediaURL = &target.MediaURL
	}
	return resp, nil
}

func (s *ModerationService) CreateReport(ctx context.Context, reporter ReporterSnapshot, req *dto.CreateReportRequest) (*models.Report, error) {
	kind := models.TargetType(req.TargetType)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: target_type must be post or comment", ErrValidation)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid target_id", ErrValidation)
	}

	if _, err := s.content.FindTarget(ctx, kind, targetID); err != nil {
		if errors.Is(err, content.ErrTargetNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	report := &models.Report{
		ID:               uuid.New(),
		ReporterID:       reporter.ID,
		ReporterUsername: reporter.Username,
		ReporterName:     reporter.DisplayName,
		ReporterAvatar:   reporter.Avatar,
		TargetType:       kind,
		TargetID:         targetID,
		Reason:           req.Reason,
		Status:           models.StatusPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ModerationService) ListReports(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	return s.reports.List(ctx, status, limit, offset)
}

// currentStatus re-reads a report after a failed transition so the
// compensation paths can tell a concurrent admin's settled outcome from
// a genuine failure.
func (s *ModerationService) currentStatus(ctx context.Context, id uuid.UUID) models.ReportStatus {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return report.Status
}

func (s *ModerationService) notify(ctx context.Context, receiverID uuid.UUID, notifType string, reportID uuid.UUID, message string, metadata map[string]interface{}) {
	if err := s.notifier.Send(ctx, receiverID, notifType, reportID, "Report", message, metadata); err != nil {
		slog.Error("notification dispatch failed",
			"receiver_id", receiverID, "type", notifType, "report_id", reportID, "error", err)
	}
}
