package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/socialnet-io/socialnet-backend/internal/models"
)

// Dispatcher delivers a user-facing notification. Callers in the
// moderation core treat it as fire-and-forget: a failed dispatch is
// logged, never rolled into moderation state.
type Dispatcher interface {
	Send(ctx context.Context, receiverID uuid.UUID, notifType string, relatedID uuid.UUID, relatedModel, message string, metadata map[string]interface{}) error
}

// Store implements Dispatcher by inserting notification rows that the
// delivery layer (outside this repo's scope) fans out to devices.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Send(ctx context.Context, receiverID uuid.UUID, notifType string, relatedID uuid.UUID, relatedModel, message string, metadata map[string]interface{}) error {
	n := models.Notification{
		ID:           uuid.New(),
		ReceiverID:   receiverID,
		Type:         notifType,
		RelatedID:    relatedID,
		RelatedModel: relatedModel,
		Message:      message,
	}

	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshal notification metadata: %w", err)
		}
		n.Metadata = datatypes.JSON(b)
	}

	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}
