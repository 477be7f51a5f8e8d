package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/socialnet-io/socialnet-backend/internal/models"
)

// ReportChange carries the fields an admin transition writes.
type ReportChange struct {
	Status           models.ReportStatus
	AdminNote        string
	ReviewedBy       uuid.UUID
	ReviewedAt       time.Time
	NotifyReporterAt *time.Time
}

// ReportStore is the persistence surface of the moderation core. All
// transitions are conditional on the caller's view of current state so
// two racing admins cannot silently overwrite each other.
type ReportStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, int64, error)

	// TransitionStatus applies change only while the report still has the
	// expected status. Returns false when someone raced us.
	TransitionStatus(ctx context.Context, id uuid.UUID, expected models.ReportStatus, change ReportChange) (bool, error)

	// ResolveSiblings moves every non-terminal report for the target
	// (except excludeID) to resolved, returning the row count.
	ResolveSiblings(ctx context.Context, targetType models.TargetType, targetID, excludeID uuid.UUID, change ReportChange) (int64, error)

	// ReverseResolved moves every resolved report for the target to
	// rejected, appending auditNote to each admin_note.
	ReverseResolved(ctx context.Context, targetType models.TargetType, targetID uuid.UUID, auditNote string, reviewedBy uuid.UUID, reviewedAt time.Time) (int64, error)

	DueForReporterNotice(ctx context.Context, now time.Time, limit int) ([]models.Report, error)
	// ClaimReporterNotice flips reporter_notified, acting as a per-report
	// lease: only one caller wins. ReleaseReporterNotice gives the claim
	// back after a failed dispatch so the next tick retries.
	ClaimReporterNotice(ctx context.Context, id uuid.UUID) (bool, error)
	ReleaseReporterNotice(ctx context.Context, id uuid.UUID) error

	Transaction(ctx context.Context, fn func(tx ReportStore) error) error
}

// GormReportStore implements ReportStore on PostgreSQL.
type GormReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *GormReportStore {
	return &GormReportStore{db: db}
}

func (s *GormReportStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return &report, nil
}

func (s *GormReportStore) Create(ctx context.Context, report *models.Report) error {
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (s *GormReportStore) List(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *GormReportStore) TransitionStatus(ctx context.Context, id uuid.UUID, expected models.ReportStatus, change ReportChange) (bool, error) {
	updates := map[string]interface{}{
		"status":      change.Status,
		"admin_note":  change.AdminNote,
		"reviewed_by": change.ReviewedBy,
		"reviewed_at": change.ReviewedAt,
	}
	if change.NotifyReporterAt != nil {
		updates["notify_reporter_at"] = *change.NotifyReporterAt
	}

	result := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("transition report: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *GormReportStore) ResolveSiblings(ctx context.Context, targetType models.TargetType, targetID, excludeID uuid.UUID, change ReportChange) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("target_type = ? AND target_id = ? AND id <> ? AND status NOT IN ?",
			targetType, targetID, excludeID,
			[]models.ReportStatus{models.StatusResolved, models.StatusRejected}).
		Updates(map[string]interface{}{
			"status":      models.StatusResolved,
			"admin_note":  change.AdminNote,
			"reviewed_by": change.ReviewedBy,
			"reviewed_at": change.ReviewedAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("resolve sibling reports: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormReportStore) ReverseResolved(ctx context.Context, targetType models.TargetType, targetID uuid.UUID, auditNote string, reviewedBy uuid.UUID, reviewedAt time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("target_type = ? AND target_id = ? AND status = ?",
			targetType, targetID, models.StatusResolved).
		Updates(map[string]interface{}{
			"status":      models.StatusRejected,
			"admin_note":  gorm.Expr("CASE WHEN admin_note = '' THEN ? ELSE admin_note || ? END", auditNote, "\n"+auditNote),
			"reviewed_by": reviewedBy,
			"reviewed_at": reviewedAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("reverse resolved reports: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormReportStore) DueForReporterNotice(ctx context.Context, now time.Time, limit int) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("notify_reporter_at IS NOT NULL AND notify_reporter_at <= ? AND reporter_notified = ?", now, false).
		Order("notify_reporter_at").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("query due reporter notices: %w", err)
	}
	return reports, nil
}

func (s *GormReportStore) ClaimReporterNotice(ctx context.Context, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ? AND reporter_notified = ?", id, false).
		Update("reporter_notified", true)
	if result.Error != nil {
		return false, fmt.Errorf("claim reporter notice: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *GormReportStore) ReleaseReporterNotice(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", id).
		Update("reporter_notified", false).Error
	if err != nil {
		return fmt.Errorf("release reporter notice: %w", err)
	}
	return nil
}

func (s *GormReportStore) Transaction(ctx context.Context, fn func(tx ReportStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormReportStore{db: tx})
	})
}
