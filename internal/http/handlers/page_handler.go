package handlers

import (
	applog "lumiere/internal/log"
	"lumiere/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	Listings *services.ListingService
	Blog     *services.BlogService
	Settings *services.SettingsService
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	featured, err := h.Listings.Featured(6)
	if err != nil {
		applog.Error(c, "home.featured.fail", err, nil)
		featured = nil // the page still renders without the carousel
	}
	posts, err := h.Blog.ListPublished()
	if err != nil {
		applog.Error(c, "home.posts.fail", err, nil)
		posts = nil
	}
	if len(posts) > 3 {
		posts = posts[:3]
	}
	cfg, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "home.settings.fail", err, nil)
	}
	return render(c, "home", fiber.Map{"Featured": featured, "Posts": posts, "Settings": cfg})
}

func (h *PageHandler) About(c *fiber.Ctx) error {
	cfg, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "about.settings.fail", err, nil)
		return failPage(c, "Could not load the page. Please try again.")
	}
	team, err := h.Settings.Team()
	if err != nil {
		applog.Error(c, "about.team.fail", err, nil)
		team = nil
	}
	return render(c, "about", fiber.Map{"Settings": cfg, "Team": team})
}
