package server

import (
	"errors"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// Lazy service accessors let tests construct a Server with bare repositories.

func (s *Server) authSvc() *service.AuthService {
	if s.authService == nil {
		s.authService = service.NewAuthService(s.userRepo)
	}
	return s.authService
}

func (s *Server) userSvc() *service.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.userRepo)
	}
	return s.userService
}

func (s *Server) messageSvc() *service.MessageService {
	if s.messageService == nil {
		s.messageService = service.NewMessageService(s.messageRepo)
	}
	return s.messageService
}

func (s *Server) followSvc() *service.FollowService {
	if s.followService == nil {
		s.followService = service.NewFollowService(s.followRepo, s.userRepo)
	}
	return s.followService
}

// mapServiceError translates an application error into an HTTP status.
// UNAUTHORIZED maps to 403 here: the caller proved an identity, the identity
// is just not permitted. Missing identities are refused with 401 by the
// AuthRequired middleware before any handler runs.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "CONFLICT":
			return fiber.StatusConflict
		case "UNAUTHORIZED":
			return fiber.StatusForbidden
		case "INTEGRITY_VIOLATION":
			return fiber.StatusConflict
		}
	}
	return fiber.StatusInternalServerError
}
