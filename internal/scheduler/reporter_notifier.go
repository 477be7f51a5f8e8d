package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/socialnet-io/socialnet-backend/internal/models"
	"github.com/socialnet-io/socialnet-backend/internal/notification"
	"github.com/socialnet-io/socialnet-backend/internal/services"
)

// Reporter-facing messages, derived from the report's status at dispatch
// time rather than at scheduling time.
const (
	msgReportActioned = "Báo cáo của bạn đã được xử lý. Nội dung vi phạm đã bị gỡ bỏ."
	msgReportReviewed = "Báo cáo của bạn đã được xem xét. Chúng tôi không tìm thấy vi phạm."
)

// ReporterNotifier periodically delivers the deferred reporter notices.
// Delivery is at-least-once: a report whose dispatch fails stays
// eligible and is retried on the next tick. The conditional claim on
// reporter_notified is the lease that keeps two instances (or an
// overlapping tick in a multi-node deployment) from double-notifying.
type ReporterNotifier struct {
	reports   services.ReportStore
	notifier  notification.Dispatcher
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

func NewReporterNotifier(reports services.ReportStore, notifier notification.Dispatcher, interval time.Duration, batchSize int) *ReporterNotifier {
	return &ReporterNotifier{
		reports:   reports,
		notifier:  notifier,
		interval:  interval,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Start runs the tick loop until done is closed.
func (n *ReporterNotifier) Start(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if sent, err := n.RunOnce(context.Background()); err != nil {
					slog.Error("reporter notification tick failed", "error", err)
				} else if sent > 0 {
					slog.Info("reporter notifications dispatched", "count", sent)
				}
			case <-done:
				return
			}
		}
	}()
}

// RunOnce processes one batch of due reports sequentially and returns
// how many notices went out. Per-report failures are logged and never
// abort the batch.
func (n *ReporterNotifier) RunOnce(ctx context.Context) (int, error) {
	due, err := n.reports.DueForReporterNotice(ctx, n.now(), n.batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, report := range due {
		claimed, err := n.reports.ClaimReporterNotice(ctx, report.ID)
		if err != nil {
			slog.Error("failed to claim reporter notice", "report_id", report.ID, "error", err)
			continue
		}
		if !claimed {
			// Another instance got there first.
			continue
		}

		msg := msgReportReviewed
		if report.Status == models.StatusResolved {
			msg = msgReportActioned
		}

		err = n.notifier.Send(ctx, report.ReporterID, models.NotificationReportUpdate,
			report.ID, "Report", msg, map[string]interface{}{
				"target_type": report.TargetType,
				"target_id":   report.TargetID,
				"status":      report.Status,
			})
		if err != nil {
			slog.Error("reporter notice dispatch failed", "report_id", report.ID, "error", err)
			if rerr := n.reports.ReleaseReporterNotice(ctx, report.ID); rerr != nil {
				slog.Error("failed to release reporter notice claim", "report_id", report.ID, "error", rerr)
			}
			continue
		}
		sent++
	}
	return sent, nil
}
