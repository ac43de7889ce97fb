package handlers

import (
	applog "lumiere/internal/log"
	"lumiere/internal/services"

	"github.com/gofiber/fiber/v2"
)

type BlogHandler struct {
	Blog *services.BlogService
}

func (h *BlogHandler) Index(c *fiber.Ctx) error {
	posts, err := h.Blog.ListPublished()
	if err != nil {
		applog.Error(c, "blog.list.fail", err, nil)
		return failPage(c, "Could not load the journal. Please retry.")
	}
	return render(c, "blog", fiber.Map{"Posts": posts})
}

func (h *BlogHandler) Detail(c *fiber.Ctx) error {
	slug := c.Params("slug")
	p, found, err := h.Blog.Find(slug)
	if err != nil {
		applog.Error(c, "blog.get.fail", err, map[string]any{"slug": slug})
		return failPage(c, "Could not load this article. Please retry.")
	}
	if !found || p.Status != "PUBLISHED" {
		return notFound(c, "Article not found")
	}
	return render(c, "blog_detail", fiber.Map{"P": p})
}
