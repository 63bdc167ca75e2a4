package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/dto"
	"github.com/spec-kit/auth-gateway/internal/service"
)

// JoinHandler exposes user registration.
type JoinHandler struct {
	join *service.JoinService
}

// NewJoinHandler constructs handler.
func NewJoinHandler(joinService *service.JoinService) *JoinHandler {
	return &JoinHandler{join: joinService}
}

// Join handles POST /join. A duplicate username still answers "ok"; the
// response never distinguishes created from already-existed.
func (h *JoinHandler) Join(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	if err := h.join.Join(c.Context(), req.Username, req.Password); err != nil {
		return err
	}

	return c.SendString("ok")
}
