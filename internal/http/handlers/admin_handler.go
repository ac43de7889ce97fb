package handlers

import (
	"lumiere/internal/domain"
	applog "lumiere/internal/log"
	"lumiere/internal/services"
	"lumiere/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Listings *services.ListingService
	Leads    *services.LeadService
	Subs     *services.SubscriberService
	Settings *services.SettingsService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	props, err := h.Listings.List()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return failPage(c, "Could not load the dashboard")
	}
	leadCounts, err := h.Leads.CountByStatus()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return failPage(c, "Could not load the dashboard")
	}
	subCount, _ := h.Subs.Count()

	forSale, sold := 0, 0
	for _, p := range props {
		switch p.Status {
		case "FOR_SALE":
			forSale++
		case "SOLD":
			sold++
		}
	}
	return render(c, "admin_dashboard", fiber.Map{
		"PropertyCount": len(props),
		"ForSale":       forSale,
		"Sold":          sold,
		"LeadCounts":    leadCounts,
		"NewLeads":      leadCounts["NEW"],
		"Subscribers":   subCount,
	})
}

// GET /admin/leads
func (h *AdminHandler) LeadsPage(c *fiber.Ctx) error {
	status := c.Query("status")
	leads, err := h.Leads.ListByStatus(status)
	if err != nil {
		applog.Error(c, "admin.leads.list.fail", err, nil)
		return failPage(c, "Could not load leads")
	}
	return render(c, "admin_leads", fiber.Map{"Leads": leads, "Status": status})
}

// POST /admin/leads/:id/status
func (h *AdminHandler) UpdateLeadStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status, okStatus := validate.LeadStatus(c.FormValue("status"))
	if !okID || !okStatus {
		return c.Status(400).SendString("invalid id or status")
	}
	if err := h.Leads.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.leads.update.fail", err, map[string]any{"lead_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.leads.update", map[string]any{"lead_id": id, "status": status})
	return c.Redirect("/admin/leads")
}

// GET /admin/settings
func (h *AdminHandler) SettingsPage(c *fiber.Ctx) error {
	cfg, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "admin.settings.load.fail", err, nil)
		return failPage(c, "Could not load settings")
	}
	return render(c, "admin_settings", fiber.Map{"Settings": cfg})
}

// POST /admin/settings replaces the whole singleton record.
func (h *AdminHandler) SaveSettings(c *fiber.Ctx) error {
	email, okEmail := validate.Email(c.FormValue("contact_email"))
	pct, okPct := validate.Percentage(c.FormValue("default_commission_pct"))
	minPayout, okMin := validate.Money(c.FormValue("minimum_payout"))
	if !okEmail || !okPct || !okMin {
		return c.Status(400).SendString("invalid input")
	}
	cfg := domain.SiteSettings{
		ContactEmail:         email,
		ContactPhone:         c.FormValue("contact_phone"),
		ContactAddress:       c.FormValue("contact_address"),
		TeamJSON:             c.FormValue("team_json"),
		DefaultAgentName:     c.FormValue("default_agent_name"),
		DefaultAgentPhone:    c.FormValue("default_agent_phone"),
		DefaultAgentImage:    c.FormValue("default_agent_image"),
		DefaultCommissionPct: pct,
		MinimumPayout:        minPayout,
		CommunityURL:         c.FormValue("community_url"),
	}
	if err := h.Settings.Save(cfg); err != nil {
		applog.Error(c, "admin.settings.save.fail", err, nil)
		return c.Status(400).SendString("could not save settings")
	}
	applog.Audit(c, "admin.settings.save", nil)
	return c.Redirect("/admin/settings")
}

// GET /admin/subscribers
func (h *AdminHandler) SubscribersPage(c *fiber.Ctx) error {
	subs, err := h.Subs.List()
	if err != nil {
		applog.Error(c, "admin.subscribers.list.fail", err, nil)
		return failPage(c, "Could not load subscribers")
	}
	return render(c, "admin_subscribers", fiber.Map{"Subscribers": subs})
}
