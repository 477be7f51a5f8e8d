package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/socialnet-io/socialnet-backend/internal/models"
)

var (
	ErrTargetNotFound    = errors.New("target not found")
	ErrUnknownTargetType = errors.New("unknown target type")
)

// Author is the content author snapshot carried on every target.
type Author struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar,omitempty"`
}

// Target is the shape the moderation core sees for both posts and
// comments. Body holds the caption or comment text.
type Target struct {
	Type      models.TargetType `json:"target_type"`
	ID        uuid.UUID         `json:"target_id"`
	Author    Author            `json:"author"`
	Body      string            `json:"body"`
	MediaURL  string            `json:"media_url,omitempty"`
	IsDeleted bool              `json:"is_deleted"`
	CreatedAt time.Time         `json:"created_at"`
}

// Lifecycle is the contract the moderation core consumes for content
// visibility. The core never mutates posts or comments directly.
type Lifecycle interface {
	// FindTarget returns the target even when it is soft-deleted, so
	// admins can review removed content. ErrTargetNotFound means the
	// row is gone entirely.
	FindTarget(ctx context.Context, kind models.TargetType, id uuid.UUID) (*Target, error)
	SoftDelete(ctx context.Context, kind models.TargetType, id uuid.UUID) error
	// Restore returns false without error when there is nothing to
	// restore (row missing or already visible).
	Restore(ctx context.Context, kind models.TargetType, id uuid.UUID) (bool, error)
}
