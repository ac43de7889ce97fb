package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"lumiere/internal/concierge"
	"lumiere/internal/config"
	"lumiere/internal/http/handlers"
	applog "lumiere/internal/log"
	"lumiere/internal/mailer"
	"lumiere/internal/repos"
	"lumiere/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo)
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Concierge: degrades to canned replies when no key is configured.
	ai, err := concierge.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal(err)
	}
	if !ai.Online() {
		log.Println("[concierge] no GEMINI_API_KEY, running offline")
	}

	// Mailing-list sync is optional too.
	var syncer services.ListSyncer
	if cfg.ListSyncURL != "" {
		syncer = mailer.New(cfg.ListSyncURL, cfg.ListSyncKey)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard (covers image uploads)
	app.Server().MaxRequestBodySize = 10 << 20 // 10 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// JSON endpoints used by the public widgets
			p := c.Path()
			return strings.HasPrefix(p, "/api/v1/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, ai, syncer)

	// Public pages
	app.Get("/", deps.PageHandler.Home)
	app.Get("/about", deps.PageHandler.About)
	app.Get("/listings", deps.ListingHandler.Index)
	app.Get("/listings/:id", deps.ListingHandler.Detail)
	app.Post("/listings/:id/inquire", deps.ListingHandler.Inquire)
	app.Get("/blog", deps.BlogHandler.Index)
	app.Get("/blog/:slug", deps.BlogHandler.Detail)
	app.Get("/contact", deps.ContactHandler.Form)
	app.Post("/contact", deps.ContactHandler.Submit)

	// Referral click tracking
	app.Get("/r/:code", deps.PortalHandler.TrackClick)

	// API
	api := app.Group("/api/v1")
	api.Post("/subscribe", limiter.New(limiter.Config{Max: 10, Expiration: time.Minute}), deps.ContactHandler.Subscribe)
	api.Post("/concierge", limiter.New(limiter.Config{
		Max:        15,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.concierge.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), deps.ChatHandler.Ask)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/leads", deps.AdminHandler.LeadsPage)
	admin.Post("/leads/:id/status", deps.AdminHandler.UpdateLeadStatus)
	admin.Get("/settings", deps.AdminHandler.SettingsPage)
	admin.Post("/settings", deps.AdminHandler.SaveSettings)
	admin.Get("/subscribers", deps.AdminHandler.SubscribersPage)
	admin.Get("/properties", deps.AdminPropertyHandler.Index)
	admin.Get("/properties/new", deps.AdminPropertyHandler.NewForm)
	admin.Post("/properties", deps.AdminPropertyHandler.Create)
	admin.Get("/properties/:id/edit", deps.AdminPropertyHandler.EditForm)
	admin.Post("/properties/:id", deps.AdminPropertyHandler.Update)
	admin.Post("/properties/:id/delete", deps.AdminPropertyHandler.Delete)
	admin.Get("/posts", deps.AdminPostHandler.Index)
	admin.Get("/posts/new", deps.AdminPostHandler.NewForm)
	admin.Post("/posts", deps.AdminPostHandler.Create)
	admin.Get("/posts/:id/edit", deps.AdminPostHandler.EditForm)
	admin.Post("/posts/:id", deps.AdminPostHandler.Update)
	admin.Post("/posts/:id/delete", deps.AdminPostHandler.Delete)
	admin.Get("/agents", deps.AdminReferralHandler.Agents)
	admin.Post("/agents", deps.AdminReferralHandler.CreateAgent)
	admin.Get("/sales", deps.AdminReferralHandler.Sales)
	admin.Post("/sales", deps.AdminReferralHandler.RecordSale)
	admin.Get("/payouts", deps.AdminReferralHandler.Payouts)
	admin.Post("/payouts/:id/resolve", deps.AdminReferralHandler.ResolvePayout)

	// Agent portal
	portal := app.Group("/portal", handlers.RequireAgent(authSvc))
	portal.Get("/", deps.PortalHandler.Dashboard)
	portal.Post("/payouts", deps.PortalHandler.RequestPayout)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
