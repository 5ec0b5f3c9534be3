package server

import (
	"warbler/internal/models"
	"warbler/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followSvc().Follow(c.Context(), userID, targetID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	observability.FollowEdgesTotal.WithLabelValues("follow").Inc()

	return c.JSON(fiber.Map{"message": "Following"})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followSvc().Unfollow(c.Context(), userID, targetID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	observability.FollowEdgesTotal.WithLabelValues("unfollow").Inc()

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// GetFollowing handles GET /api/users/:id/following. Any authenticated
// identity may view it; the route sits behind AuthRequired.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	users, err := s.followSvc().Following(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(users)
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	users, err := s.followSvc().Followers(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(users)
}
