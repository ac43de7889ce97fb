package handlers

import (
	"encoding/json"
	"strings"

	"lumiere/internal/domain"
	applog "lumiere/internal/log"
	"lumiere/internal/media"
	"lumiere/internal/services"
	"lumiere/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminPostHandler struct {
	Blog  *services.BlogService
	Media *media.Store
}

// GET /admin/posts
func (h *AdminPostHandler) Index(c *fiber.Ctx) error {
	posts, err := h.Blog.ListAll()
	if err != nil {
		applog.Error(c, "admin.posts.list.fail", err, nil)
		return failPage(c, "Could not load posts")
	}
	return render(c, "admin_posts", fiber.Map{"Posts": posts})
}

// GET /admin/posts/new
func (h *AdminPostHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "admin_post_form", fiber.Map{
		"P": domain.BlogPost{Status: "DRAFT"}, "CategoriesText": "",
	})
}

// categoriesText renders the stored JSON list back into the comma-separated
// input format the form submits.
func categoriesText(jsonList string) string {
	var cats []string
	_ = json.Unmarshal([]byte(jsonList), &cats)
	return strings.Join(cats, ", ")
}

// GET /admin/posts/:id/edit
func (h *AdminPostHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Article not found")
	}
	p, found, err := h.Blog.Get(id)
	if err != nil {
		applog.Error(c, "admin.posts.get.fail", err, map[string]any{"post_id": id})
		return failPage(c, "Could not load this post")
	}
	if !found {
		return notFound(c, "Article not found")
	}
	return render(c, "admin_post_form", fiber.Map{
		"P": p, "Editing": true, "CategoriesText": categoriesText(p.Categories),
	})
}

func (h *AdminPostHandler) fromForm(c *fiber.Ctx) (domain.BlogPost, bool) {
	title := strings.TrimSpace(c.FormValue("title"))
	status, okStatus := validate.PostStatus(c.FormValue("status"))
	if title == "" || !okStatus {
		return domain.BlogPost{}, false
	}

	// Categories arrive comma-separated.
	var cats []string
	for _, part := range strings.Split(c.FormValue("categories"), ",") {
		if cat := strings.TrimSpace(part); cat != "" {
			cats = append(cats, cat)
		}
	}
	if cats == nil {
		cats = []string{}
	}
	b, _ := json.Marshal(cats)

	p := domain.BlogPost{
		Title:           title,
		Slug:            strings.TrimSpace(c.FormValue("slug")),
		Content:         c.FormValue("content"),
		Excerpt:         strings.TrimSpace(c.FormValue("excerpt")),
		Keyphrase:       strings.TrimSpace(c.FormValue("keyphrase")),
		MetaDescription: strings.TrimSpace(c.FormValue("meta_description")),
		Categories:      string(b),
		CoverImage:      strings.TrimSpace(c.FormValue("cover_image")),
		Status:          status,
		Author:          strings.TrimSpace(c.FormValue("author")),
	}

	if fh, err := c.FormFile("cover"); err == nil && fh != nil {
		url, err := h.Media.Save("posts", fh)
		if err != nil {
			applog.Error(c, "admin.posts.upload.fail", err, map[string]any{"file": fh.Filename})
		} else {
			p.CoverImage = url
		}
	}
	return p, true
}

// POST /admin/posts
func (h *AdminPostHandler) Create(c *fiber.Ctx) error {
	p, ok := h.fromForm(c)
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	created, err := h.Blog.Create(p)
	if err != nil {
		applog.Error(c, "admin.posts.create.fail", err, nil)
		return c.Status(400).SendString("could not save post")
	}
	applog.Audit(c, "admin.posts.create", map[string]any{"post_id": created.ID})
	return c.Redirect("/admin/posts")
}

// POST /admin/posts/:id
func (h *AdminPostHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	p, okForm := h.fromForm(c)
	if !okForm {
		return c.Status(400).SendString("invalid input")
	}
	p.ID = id
	if err := h.Blog.Update(p); err != nil {
		applog.Error(c, "admin.posts.update.fail", err, map[string]any{"post_id": id})
		return c.Status(400).SendString("could not save post")
	}
	applog.Audit(c, "admin.posts.update", map[string]any{"post_id": id})
	return c.Redirect("/admin/posts")
}

// POST /admin/posts/:id/delete
func (h *AdminPostHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	if err := h.Blog.Delete(id); err != nil {
		applog.Error(c, "admin.posts.delete.fail", err, map[string]any{"post_id": id})
		return c.Status(400).SendString("could not delete post")
	}
	applog.Audit(c, "admin.posts.delete", map[string]any{"post_id": id})
	return c.Redirect("/admin/posts")
}
