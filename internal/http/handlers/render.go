package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		// Fallback when the middleware locals were not populated.
		data["CSRFToken"] = cookTok
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": message})
}

func failPage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": message})
}
