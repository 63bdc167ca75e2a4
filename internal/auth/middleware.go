package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

const principalKey = "auth_principal"

// Principal is the per-request view of a validated token: a username and
// exactly one role. It never outlives the request.
type Principal struct {
	Username string
	Role     domain.Role
}

// AuthMiddleware enforces the access policy on every request before any
// handler executes. Missing, malformed, tampered and expired tokens are all
// rejected with a bare status code; no failure detail reaches the client.
type AuthMiddleware struct {
	codec  *TokenCodec
	policy *Policy
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(codec *TokenCodec, policy *Policy) *AuthMiddleware {
	return &AuthMiddleware{codec: codec, policy: policy}
}

// Handle evaluates the policy for the request path and short-circuits with a
// rejection or passes control to the next handler.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	req := m.policy.Evaluate(c.Path())
	if req.Public {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return reject(c, http.StatusUnauthorized)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return reject(c, http.StatusUnauthorized)
	}

	claims, err := m.codec.Decode(parts[1])
	if err != nil {
		return reject(c, http.StatusUnauthorized)
	}

	if req.Role != "" && claims.Role != req.Role {
		return reject(c, http.StatusForbidden)
	}

	c.Locals(principalKey, &Principal{Username: claims.Username, Role: claims.Role})
	return c.Next()
}

// reject short-circuits with a bare status code and an empty body so no
// failure detail reaches the client.
func reject(c *fiber.Ctx, status int) error {
	c.Status(status)
	return nil
}

// PrincipalFromContext retrieves the authenticated identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
