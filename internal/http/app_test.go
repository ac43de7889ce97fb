package handlers_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lumiere/internal/concierge"
	"lumiere/internal/config"
	"lumiere/internal/http/handlers"
	"lumiere/internal/repos"
	"lumiere/internal/services"
)

// newTestApp wires the real handler graph against an in-memory database,
// the same shape main() builds.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo)

	ai, err := concierge.New(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/v1/")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	cfg := config.Config{MediaDir: t.TempDir()}
	deps := handlers.NewDeps(db, cfg, ai, nil)

	app.Get("/", deps.PageHandler.Home)
	app.Get("/listings", deps.ListingHandler.Index)
	app.Get("/listings/:id", deps.ListingHandler.Detail)
	app.Get("/contact", deps.ContactHandler.Form)
	app.Post("/contact", deps.ContactHandler.Submit)
	app.Post("/api/v1/subscribe", deps.ContactHandler.Subscribe)
	app.Post("/api/v1/concierge", deps.ChatHandler.Ask)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/leads", deps.AdminHandler.LeadsPage)
	admin.Get("/properties/:id/edit", deps.AdminPropertyHandler.EditForm)
	admin.Post("/properties/:id", deps.AdminPropertyHandler.Update)
	admin.Get("/posts/:id/edit", deps.AdminPostHandler.EditForm)

	return app, db, authSvc
}

// adminSID seeds the back-office account and returns a bound session id.
func adminSID(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	if err := repos.SeedAdmin(db, "admin@lumiere.test", "Sup3rSecret!"); err != nil {
		t.Fatal(err)
	}
	users := repos.NewUserRepo(db)
	admin, err := users.ByEmail("admin@lumiere.test")
	if err != nil {
		t.Fatal(err)
	}
	sid := uuid.NewString()
	if err := users.BindSession(sid, admin.ID); err != nil {
		t.Fatal(err)
	}
	return sid
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
