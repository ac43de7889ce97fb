package handlers

import (
	"time"

	applog "lumiere/internal/log"
	"lumiere/internal/services"
	"lumiere/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return render(c, "login", fiber.Map{"Err": "", "CSRFToken": tok})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	tok := c.Cookies("csrf_")
	if _, ok := validate.Email(email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid credentials", "CSRFToken": tok})
	}
	if !validate.Password(pass) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid credentials", "CSRFToken": tok})
	}

	u, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid credentials", "CSRFToken": tok})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email, "role": u.Role})
	if u.Role == "AGENT" {
		return c.Redirect("/portal")
	}
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
