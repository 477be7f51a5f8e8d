package services

import "fmt"

// Violation labels by report reason. User-facing text is Vietnamese,
// the platform language; admin API messages stay English.
var violationLabels = map[string]string{
	"spam":           "Spam hoặc quảng cáo",
	"inappropriate":  "Nội dung không phù hợp",
	"harassment":     "Quấy rối hoặc bắt nạt",
	"hate_speech":    "Ngôn từ thù ghét",
	"violence":       "Bạo lực hoặc nội dung nguy hiểm",
	"misinformation": "Thông tin sai lệch",
}

const violationLabelFallback = "Vi phạm tiêu chuẩn cộng đồng"

func violationLabel(reason string) string {
	if label, ok := violationLabels[reason]; ok {
		return label
	}
	return violationLabelFallback
}

func violationMessage(reason string) string {
	return fmt.Sprintf("Nội dung của bạn đã bị gỡ vì: %s. Nếu bạn cho rằng đây là nhầm lẫn, bạn có thể gửi khiếu nại.", violationLabel(reason))
}

const (
	msgAppealAccepted  = "Khiếu nại của bạn đã được chấp nhận. Nội dung đã được khôi phục."
	msgAppealRejected  = "Khiếu nại của bạn đã bị từ chối. Quyết định ban đầu được giữ nguyên."
	msgContentRestored = "Nội dung của bạn đã được khôi phục."

	// Shown to admins reviewing a report whose target was hard-deleted.
	tombstoneAuthorName = "Người dùng không xác định"
)
