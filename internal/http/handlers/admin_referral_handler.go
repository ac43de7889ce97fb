package handlers

import (
	"strings"

	"lumiere/internal/domain"
	applog "lumiere/internal/log"
	"lumiere/internal/repos"
	"lumiere/internal/services"
	"lumiere/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AdminReferralHandler struct {
	Referrals *services.ReferralService
	Listings  *services.ListingService
	Users     *repos.UserRepo
}

// GET /admin/agents
func (h *AdminReferralHandler) Agents(c *fiber.Ctx) error {
	agents, err := h.Referrals.ListAgents()
	if err != nil {
		applog.Error(c, "admin.agents.list.fail", err, nil)
		return failPage(c, "Could not load agents")
	}
	type row struct {
		Agent  domain.Agent
		Totals domain.AgentTotals
	}
	rows := make([]row, 0, len(agents))
	for _, a := range agents {
		t, err := h.Referrals.Totals(a.UserID)
		if err != nil {
			applog.Error(c, "admin.agents.totals.fail", err, map[string]any{"agent_id": a.UserID})
			continue
		}
		rows = append(rows, row{Agent: a, Totals: t})
	}
	return render(c, "admin_agents", fiber.Map{"Rows": rows})
}

// POST /admin/agents creates the AGENT login and its referral profile.
func (h *AdminReferralHandler) CreateAgent(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	if !okName || !okEmail || !validate.Password(pass) {
		return c.Status(400).SendString("invalid input")
	}
	code := strings.TrimSpace(c.FormValue("referral_code"))
	if code != "" {
		if _, ok := validate.ReferralCode(code); !ok {
			return c.Status(400).SendString("invalid referral code")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), 12)
	if err != nil {
		return c.Status(500).SendString("could not create agent")
	}
	u := domain.User{
		ID:    "u-" + uuid.NewString(),
		Email: email,
		Name:  name,
		Hash:  string(hash),
		Role:  "AGENT",
	}
	if err := h.Users.Insert(u); err != nil {
		applog.Error(c, "admin.agents.create.fail", err, map[string]any{"email": email})
		return c.Status(400).SendString("could not create agent")
	}
	if _, err := h.Referrals.EnrollAgent(u.ID, name, code); err != nil {
		applog.Error(c, "admin.agents.enroll.fail", err, map[string]any{"user_id": u.ID})
		return c.Status(400).SendString("could not create agent")
	}
	applog.Audit(c, "admin.agents.create", map[string]any{"user_id": u.ID})
	return c.Redirect("/admin/agents")
}

// GET /admin/sales
func (h *AdminReferralHandler) Sales(c *fiber.Ctx) error {
	sales, err := h.Referrals.ListSales()
	if err != nil {
		applog.Error(c, "admin.sales.list.fail", err, nil)
		return failPage(c, "Could not load sales")
	}
	agents, _ := h.Referrals.ListAgents()
	props, _ := h.Listings.List()
	return render(c, "admin_sales", fiber.Map{"Sales": sales, "Agents": agents, "Properties": props})
}

// POST /admin/sales records a sale; the commission rate is snapshotted now.
func (h *AdminReferralHandler) RecordSale(c *fiber.Ctx) error {
	agentID, okAgent := validate.ID(c.FormValue("agent_id"))
	amount, okAmount := validate.Amount(c.FormValue("sale_amount"))
	if !okAgent || !okAmount {
		return c.Status(400).SendString("invalid input")
	}
	var pct float64
	if v := c.FormValue("commission_pct"); v != "" {
		p, ok := validate.Percentage(v)
		if !ok {
			return c.Status(400).SendString("invalid commission rate")
		}
		pct = p
	}

	var prop domain.Property
	if pid := strings.TrimSpace(c.FormValue("property_id")); pid != "" {
		p, found, err := h.Listings.Get(pid)
		if err != nil || !found {
			return c.Status(400).SendString("unknown property")
		}
		prop = p
	}

	sale, err := h.Referrals.RecordSale(agentID, prop, amount, pct)
	if err != nil {
		applog.Error(c, "admin.sales.record.fail", err, map[string]any{"agent_id": agentID})
		return c.Status(400).SendString("could not record sale")
	}
	applog.Audit(c, "admin.sales.record", map[string]any{
		"sale_id": sale.ID, "agent_id": agentID, "amount": amount, "pct": sale.CommissionPct,
	})
	return c.Redirect("/admin/sales")
}

// GET /admin/payouts
func (h *AdminReferralHandler) Payouts(c *fiber.Ctx) error {
	payouts, err := h.Referrals.ListPayouts()
	if err != nil {
		applog.Error(c, "admin.payouts.list.fail", err, nil)
		return failPage(c, "Could not load payouts")
	}
	return render(c, "admin_payouts", fiber.Map{"Payouts": payouts})
}

// POST /admin/payouts/:id/resolve approves or rejects a request.
func (h *AdminReferralHandler) ResolvePayout(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	reference := strings.TrimSpace(c.FormValue("reference"))
	if !okID {
		return c.Status(400).SendString("invalid id")
	}
	if err := h.Referrals.ResolvePayout(id, status, reference); err != nil {
		applog.Error(c, "admin.payouts.resolve.fail", err, map[string]any{"payout_id": id})
		return c.Status(400).SendString("could not update payout")
	}
	applog.Audit(c, "admin.payouts.resolve", map[string]any{"payout_id": id, "status": status})
	return c.Redirect("/admin/payouts")
}
