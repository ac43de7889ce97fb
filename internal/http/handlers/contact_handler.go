package handlers

import (
	applog "lumiere/internal/log"
	"lumiere/internal/services"
	"lumiere/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	Leads    *services.LeadService
	Settings *services.SettingsService
	Subs     *services.SubscriberService
}

func (h *ContactHandler) Form(c *fiber.Ctx) error {
	cfg, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "contact.settings.fail", err, nil)
		return failPage(c, "Could not load the page. Please try again.")
	}
	return render(c, "contact", fiber.Map{"Settings": cfg})
}

// Submit creates a NEW / GENERAL_INQUIRY lead from the contact form.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	first, okFirst := validate.Name(c.FormValue("first_name"))
	last, okLast := validate.Name(c.FormValue("last_name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	phone, okPhone := validate.Phone(c.FormValue("phone"))
	message, okMsg := validate.Message(c.FormValue("message"))
	if !okFirst || !okLast || !okEmail || !okPhone || !okMsg {
		applog.Security(c, "validation.fail", map[string]any{"form": "contact"})
		cfg, _ := h.Settings.Get()
		return c.Status(fiber.StatusBadRequest).Render("contact", fiber.Map{
			"Settings": cfg, "Err": "Please check the form and try again.",
		})
	}

	if _, err := h.Leads.CreateGeneral(first, last, email, phone, message); err != nil {
		applog.Error(c, "lead.create.fail", err, nil)
		cfg, _ := h.Settings.Get()
		return c.Status(fiber.StatusInternalServerError).Render("contact", fiber.Map{
			"Settings": cfg, "Err": "We could not send your message. Please try again.",
		})
	}
	applog.Audit(c, "lead.create", map[string]any{"type": "GENERAL_INQUIRY"})
	cfg, _ := h.Settings.Get()
	return render(c, "contact", fiber.Map{
		"Settings": cfg, "Msg": "Thank you, we will reply within one business day.",
	})
}

type subscribeRequest struct {
	Email string `json:"email" form:"email"`
}

// Subscribe registers a newsletter address. The widget posts JSON; plain
// form posts work too. A repeat subscribe looks identical to a first one;
// the visitor never learns whether an address was already on the list.
func (h *ContactHandler) Subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "subscribe"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid email"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"form": "subscribe"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid email"})
	}
	if _, err := h.Subs.Subscribe(email); err != nil {
		applog.Error(c, "subscribe.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not subscribe, please retry"})
	}
	applog.Info(c, "subscribe.ok", nil)
	return c.JSON(fiber.Map{"ok": true})
}
