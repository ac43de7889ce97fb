package handlers

import (
	"errors"

	"lumiere/internal/domain"
	applog "lumiere/internal/log"
	"lumiere/internal/services"
	"lumiere/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PortalHandler struct {
	Referrals *services.ReferralService
	Settings  *services.SettingsService
}

func portalUser(c *fiber.Ctx) (*domain.User, bool) {
	u, ok := c.Locals("user").(*domain.User)
	return u, ok && u != nil
}

// GET /portal renders the agent's referral dashboard. Totals are derived
// from the sales and payouts tables on every request.
func (h *PortalHandler) Dashboard(c *fiber.Ctx) error {
	u, ok := portalUser(c)
	if !ok {
		return c.Redirect("/login")
	}
	totals, err := h.Referrals.Totals(u.ID)
	if err != nil {
		applog.Error(c, "portal.totals.fail", err, map[string]any{"agent_id": u.ID})
		return failPage(c, "Could not load your dashboard")
	}
	sales, err := h.Referrals.SalesByAgent(u.ID)
	if err != nil {
		applog.Error(c, "portal.sales.fail", err, map[string]any{"agent_id": u.ID})
		return failPage(c, "Could not load your dashboard")
	}
	payouts, err := h.Referrals.PayoutsByAgent(u.ID)
	if err != nil {
		applog.Error(c, "portal.payouts.fail", err, map[string]any{"agent_id": u.ID})
		return failPage(c, "Could not load your dashboard")
	}
	cfg, _ := h.Settings.Get()
	return render(c, "portal_dashboard", fiber.Map{
		"Totals": totals, "Sales": sales, "Payouts": payouts,
		"MinimumPayout": cfg.MinimumPayout, "CommunityURL": cfg.CommunityURL,
	})
}

// POST /portal/payouts
func (h *PortalHandler) RequestPayout(c *fiber.Ctx) error {
	u, ok := portalUser(c)
	if !ok {
		return c.Redirect("/login")
	}
	amount, okAmount := validate.Money(c.FormValue("amount"))
	if !okAmount || amount <= 0 {
		return c.Status(400).SendString("invalid amount")
	}
	_, err := h.Referrals.RequestPayout(u.ID, amount)
	switch {
	case errors.Is(err, services.ErrNotEnrolled):
		applog.Security(c, "portal.payout.not_enrolled", map[string]any{"user_id": u.ID})
		return c.Status(400).SendString("payouts are available to enrolled referral agents only")
	case errors.Is(err, services.ErrBelowMinimum):
		applog.Security(c, "portal.payout.below_minimum", map[string]any{"agent_id": u.ID, "amount": amount})
		return c.Status(400).SendString("amount is below the minimum payout")
	case errors.Is(err, services.ErrInsufficientFunds):
		applog.Security(c, "portal.payout.insufficient", map[string]any{"agent_id": u.ID, "amount": amount})
		return c.Status(400).SendString("amount exceeds your available balance")
	case err != nil:
		applog.Error(c, "portal.payout.fail", err, map[string]any{"agent_id": u.ID})
		return c.Status(400).SendString("could not submit payout request")
	}
	applog.Audit(c, "portal.payout.request", map[string]any{"agent_id": u.ID, "amount": amount})
	return c.Redirect("/portal")
}

// TrackClick serves /r/:code: records the referral click, then sends the
// visitor to the home page. Unknown codes redirect silently.
func (h *PortalHandler) TrackClick(c *fiber.Ctx) error {
	code, ok := validate.ReferralCode(c.Params("code"))
	if !ok {
		return c.Redirect("/")
	}
	if err := h.Referrals.TrackClick(code); err != nil {
		applog.Info(c, "referral.click.unknown", map[string]any{"code": code})
	} else {
		applog.Info(c, "referral.click", map[string]any{"code": code})
	}
	return c.Redirect("/")
}
