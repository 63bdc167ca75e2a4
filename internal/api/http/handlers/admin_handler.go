package handlers

import "github.com/gofiber/fiber/v2"

// AdminHandler serves the admin-only route. Authorization happens in the
// policy middleware; by the time this runs the caller holds ROLE_ADMIN.
type AdminHandler struct{}

// NewAdminHandler returns a new handler instance.
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Index handles GET /admin.
func (h *AdminHandler) Index(c *fiber.Ctx) error {
	return c.SendString("admin Controller")
}
