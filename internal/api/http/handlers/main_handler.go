package handlers

import "github.com/gofiber/fiber/v2"

// MainHandler serves the public landing route.
type MainHandler struct{}

// NewMainHandler returns a new handler instance.
func NewMainHandler() *MainHandler {
	return &MainHandler{}
}

// Index handles GET /.
func (h *MainHandler) Index(c *fiber.Ctx) error {
	return c.SendString("Main Controller")
}
