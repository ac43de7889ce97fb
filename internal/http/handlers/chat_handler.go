package handlers

import (
	"strings"

	"lumiere/internal/concierge"
	applog "lumiere/internal/log"
	"lumiere/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	Concierge *concierge.Concierge
	Listings  *services.ListingService
}

type chatRequest struct {
	Message string `json:"message"`
}

// Ask serves the chat widget: one stateless round trip per message, with
// the current portfolio snapshot in the system instruction.
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" || len(msg) > 1000 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message must be 1-1000 characters"})
	}

	props, err := h.Listings.List()
	if err != nil {
		// The concierge can still answer politely without inventory.
		applog.Error(c, "chat.inventory.fail", err, nil)
		props = nil
	}

	reply := h.Concierge.Ask(c.Context(), msg, props)
	applog.Info(c, "chat.reply", map[string]any{"online": h.Concierge.Online()})
	return c.JSON(fiber.Map{"reply": reply})
}
