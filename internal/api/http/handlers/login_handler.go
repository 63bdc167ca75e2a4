package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/dto"
	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/service"
)

// LoginHandler exposes the authentication gate.
type LoginHandler struct {
	auth *service.AuthService
}

// NewLoginHandler constructs handler.
func NewLoginHandler(authService *service.AuthService) *LoginHandler {
	return &LoginHandler{auth: authService}
}

// Login handles POST /login. Success attaches the minted token as a bearer
// authorization header with an empty body. Unknown usernames, wrong passwords
// and unparsable submissions all answer an identical bare 401.
func (h *LoginHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return reject(c)
	}
	if req.Username == "" || req.Password == "" {
		return reject(c)
	}

	token, _, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			return reject(c)
		}
		return err
	}

	c.Set(fiber.HeaderAuthorization, "Bearer "+token)
	c.Status(http.StatusOK)
	return nil
}

// reject answers a bare 401 with an empty body. SendStatus would write the
// status text as body, which would leak a distinguishable response.
func reject(c *fiber.Ctx) error {
	c.Status(http.StatusUnauthorized)
	return nil
}
