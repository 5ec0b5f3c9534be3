package server

import (
	"warbler/internal/models"
	"warbler/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// CreateMessage handles POST /api/messages (and the legacy /api/messages/new).
// The author is always the session identity; a user_id in the payload is
// accepted and silently ignored.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Text   string `json:"text"`
		UserID uint   `json:"user_id"` // ignored, see above
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageSvc().CreateMessage(c.Context(), userID, req.Text)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	observability.MessagesCreatedTotal.Inc()

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetMessage handles GET /api/messages/:id
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	message, err := s.messageSvc().GetMessage(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(message)
}

// DeleteMessage handles DELETE /api/messages/:id (and the legacy
// POST /api/messages/:id/delete). Only the author may delete.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageSvc().DeleteMessage(c.Context(), id, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	observability.MessagesDeletedTotal.Inc()

	return c.JSON(fiber.Map{"message": "Warble deleted"})
}

// GetMessages handles GET /api/messages, newest first.
func (s *Server) GetMessages(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	page := parsePagination(c, 20)

	messages, err := s.messageSvc().ListRecent(c.Context(), page.Limit, page.Offset, viewerID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(messages)
}

// GetFeed handles GET /api/messages/feed: warbles by followed users plus the
// viewer's own.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	messages, err := s.messageSvc().Feed(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(messages)
}

// ToggleLike handles POST /api/messages/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.messageSvc().ToggleLike(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	if liked {
		observability.LikesTotal.WithLabelValues("like").Inc()
	} else {
		observability.LikesTotal.WithLabelValues("unlike").Inc()
	}

	return c.JSON(fiber.Map{"liked": liked})
}
