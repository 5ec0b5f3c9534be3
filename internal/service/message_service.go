package service

import (
	"context"
	"fmt"

	"warbler/internal/models"
	"warbler/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// CreateMessage posts a warble under authorID. The caller supplies the author
// from the session identity, never from the request payload.
func (s *MessageService) CreateMessage(ctx context.Context, authorID uint, text string) (*models.Message, error) {
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > models.MaxMessageLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Text too long (max %d characters)", models.MaxMessageLen))
	}

	message := &models.Message{Text: text, UserID: authorID}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Reload to pick up the stored timestamp and the author association.
	return s.messageRepo.GetByID(ctx, message.ID, authorID)
}

func (s *MessageService) GetMessage(ctx context.Context, id, viewerID uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id, viewerID)
}

// DeleteMessage removes a warble. Only the author may delete it; anyone else
// is refused even when authenticated.
func (s *MessageService) DeleteMessage(ctx context.Context, messageID, requesterID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID, 0)
	if err != nil {
		return err
	}
	if message.UserID != requesterID {
		return models.NewUnauthorizedError("Access unauthorized.")
	}
	return s.messageRepo.Delete(ctx, messageID)
}

func (s *MessageService) ListRecent(ctx context.Context, limit, offset int, viewerID uint) ([]models.Message, error) {
	return s.messageRepo.List(ctx, limit, offset, viewerID)
}

func (s *MessageService) ListByUser(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error) {
	return s.messageRepo.ListByUser(ctx, userID, limit, offset, viewerID)
}

// Feed returns the home timeline: warbles by followed users plus the viewer's
// own, newest first.
func (s *MessageService) Feed(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.Feed(ctx, userID, limit, offset)
}

// ToggleLike likes the warble if it is not yet liked by userID, and unlikes it
// otherwise. It reports the resulting state. Liking your own warble is
// rejected.
func (s *MessageService) ToggleLike(ctx context.Context, userID, messageID uint) (bool, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID, 0)
	if err != nil {
		return false, err
	}
	if message.UserID == userID {
		return false, models.NewValidationError("You cannot like your own warble")
	}

	liked, err := s.messageRepo.IsLikedBy(ctx, userID, messageID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.messageRepo.Unlike(ctx, userID, messageID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.messageRepo.Like(ctx, userID, messageID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MessageService) ListLikedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.ListLikedBy(ctx, userID, limit, offset)
}
