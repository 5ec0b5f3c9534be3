package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for warbles.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int, viewerID uint) ([]models.Message, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error)
	Feed(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
	Like(ctx context.Context, userID, messageID uint) error
	Unlike(ctx context.Context, userID, messageID uint) error
	IsLikedBy(ctx context.Context, userID, messageID uint) (bool, error)
	ListLikedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return wrapPersistError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error) {
	var message models.Message
	key := cache.MessageKey(id)

	// Only the stored record is cached; Liked and LikesCount are
	// per-viewer and computed fresh below.
	err := cache.Aside(ctx, key, &message, cache.MessageTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Message", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.annotate(ctx, []models.Message{}, &message, viewerID); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Where("message_id = ?", id).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Message{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, id)
	return nil
}

func (r *messageRepository) List(ctx context.Context, limit, offset int, viewerID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("timestamp DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.annotate(ctx, messages, nil, viewerID); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.annotate(ctx, messages, nil, viewerID); err != nil {
		return nil, err
	}
	return messages, nil
}

// Feed returns warbles posted by users the given user follows, plus their own.
func (r *messageRepository) Feed(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID,
			r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID)).
		Order("timestamp DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.annotate(ctx, messages, nil, userID); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Like(ctx context.Context, userID, messageID uint) error {
	like := models.Like{UserID: userID, MessageID: messageID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return wrapPersistError(err)
	}
	return nil
}

func (r *messageRepository) Unlike(ctx context.Context, userID, messageID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) IsLikedBy(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *messageRepository) ListLikedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.annotate(ctx, messages, nil, userID); err != nil {
		return nil, err
	}
	return messages, nil
}

// annotate fills the computed LikesCount and Liked fields. Pass either a
// slice or a single message.
func (r *messageRepository) annotate(ctx context.Context, messages []models.Message, single *models.Message, viewerID uint) error {
	targets := make([]*models.Message, 0, len(messages)+1)
	for i := range messages {
		targets = append(targets, &messages[i])
	}
	if single != nil {
		targets = append(targets, single)
	}

	for _, m := range targets {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("message_id = ?", m.ID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		m.LikesCount = int(count)

		if viewerID != 0 {
			liked, err := r.IsLikedBy(ctx, viewerID, m.ID)
			if err != nil {
				return err
			}
			m.Liked = liked
		}
	}
	return nil
}
