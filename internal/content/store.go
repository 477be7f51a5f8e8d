package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/socialnet-io/socialnet-backend/internal/models"
)

// Store implements Lifecycle on top of the posts and comments tables.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) FindTarget(ctx context.Context, kind models.TargetType, id uuid.UUID) (*Target, error) {
	switch kind {
	case models.TargetPost:
		var post models.Post
		if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, fmt.Errorf("find post: %w", err)
		}
		return &Target{
			Type: models.TargetPost,
			ID:   post.ID,
			Author: Author{
				ID:          post.AuthorID,
				Username:    post.AuthorUsername,
				DisplayName: post.AuthorName,
				Avatar:      post.AuthorAvatar,
			},
			Body:      post.Caption,
			MediaURL:  post.MediaURL,
			IsDeleted: post.IsDeleted,
			CreatedAt: post.CreatedAt,
		}, nil

	case models.TargetComment:
		var comment models.Comment
		if err := s.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, fmt.Errorf("find comment: %w", err)
		}
		return &Target{
			Type: models.TargetComment,
			ID:   comment.ID,
			Author: Author{
				ID:          comment.AuthorID,
				Username:    comment.AuthorUsername,
				DisplayName: comment.AuthorName,
				Avatar:      comment.AuthorAvatar,
			},
			Body:      comment.Content,
			IsDeleted: comment.IsDeleted,
			CreatedAt: comment.CreatedAt,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownTargetType, kind)
}

func (s *Store) SoftDelete(ctx context.Context, kind models.TargetType, id uuid.UUID) error {
	model, err := targetModel(kind)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(model).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": s.now(),
		})
	if result.Error != nil {
		return fmt.Errorf("soft delete %s: %w", kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTargetNotFound
	}
	return nil
}

func (s *Store) Restore(ctx context.Context, kind models.TargetType, id uuid.UUID) (bool, error) {
	model, err := targetModel(kind)
	if err != nil {
		return false, err
	}

	result := s.db.WithContext(ctx).Model(model).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{
			"is_deleted": false,
			"deleted_at": nil,
		})
	if result.Error != nil {
		return false, fmt.Errorf("restore %s: %w", kind, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func targetModel(kind models.TargetType) (interface{}, error) {
	switch kind {
	case models.TargetPost:
		return &models.Post{}, nil
	case models.TargetComment:
		return &models.Comment{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTargetType, kind)
}
