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

type AdminPropertyHandler struct {
	Listings *services.ListingService
	Settings *services.SettingsService
	Media    *media.Store
}

// GET /admin/properties
func (h *AdminPropertyHandler) Index(c *fiber.Ctx) error {
	props, err := h.Listings.List()
	if err != nil {
		applog.Error(c, "admin.properties.list.fail", err, nil)
		return failPage(c, "Could not load properties")
	}
	return render(c, "admin_properties", fiber.Map{"Properties": props})
}

// GET /admin/properties/new
func (h *AdminPropertyHandler) NewForm(c *fiber.Ctx) error {
	cfg, _ := h.Settings.Get()
	return render(c, "admin_property_form", fiber.Map{
		"P": domain.Property{
			AgentName:  cfg.DefaultAgentName,
			AgentPhone: cfg.DefaultAgentPhone,
			AgentPhoto: cfg.DefaultAgentImage,
			Type:       "VILLA",
			Status:     "FOR_SALE",
		},
		"FeaturesText": "",
	})
}

// featuresText renders the stored JSON list back into the one-per-line
// textarea format the form submits.
func featuresText(jsonList string) string {
	var features []string
	_ = json.Unmarshal([]byte(jsonList), &features)
	return strings.Join(features, "\n")
}

// GET /admin/properties/:id/edit
func (h *AdminPropertyHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Property Not Found")
	}
	p, found, err := h.Listings.Get(id)
	if err != nil {
		applog.Error(c, "admin.properties.get.fail", err, map[string]any{"property_id": id})
		return failPage(c, "Could not load this property")
	}
	if !found {
		return notFound(c, "Property Not Found")
	}
	return render(c, "admin_property_form", fiber.Map{
		"P": p, "Editing": true, "FeaturesText": featuresText(p.Features),
	})
}

func areaSqFt(s string) int {
	n, ok := validate.Amount(s)
	if !ok {
		return 0
	}
	return int(n)
}

func (h *AdminPropertyHandler) fromForm(c *fiber.Ctx) (domain.Property, bool) {
	price, okPrice := validate.Amount(c.FormValue("price"))
	ptype, okType := validate.PropertyType(c.FormValue("type"))
	status, okStatus := validate.PropertyStatus(c.FormValue("status"))
	title := strings.TrimSpace(c.FormValue("title"))
	location := strings.TrimSpace(c.FormValue("location"))
	if !okPrice || !okType || !okStatus || title == "" || location == "" {
		return domain.Property{}, false
	}

	p := domain.Property{
		ID:          strings.TrimSpace(c.FormValue("id")),
		Title:       title,
		Description: strings.TrimSpace(c.FormValue("description")),
		Price:       price,
		Location:    location,
		Bedrooms:    validate.Count(c.FormValue("bedrooms")),
		Bathrooms:   validate.Count(c.FormValue("bathrooms")),
		AreaSqFt:    areaSqFt(c.FormValue("area_sq_ft")),
		Type:        ptype,
		Status:      status,
		AgentName:   strings.TrimSpace(c.FormValue("agent_name")),
		AgentPhoto:  strings.TrimSpace(c.FormValue("agent_photo")),
		AgentPhone:  strings.TrimSpace(c.FormValue("agent_phone")),
		Featured:    c.FormValue("featured") == "on",
	}

	// Features arrive one per line from the form textarea.
	var features []string
	for _, line := range strings.Split(c.FormValue("features"), "\n") {
		if f := strings.TrimSpace(line); f != "" {
			features = append(features, f)
		}
	}
	if features == nil {
		features = []string{}
	}
	b, _ := json.Marshal(features)
	p.Features = string(b)

	// Existing image URLs survive the round trip; new uploads are appended.
	var images []string
	_ = json.Unmarshal([]byte(c.FormValue("images_json")), &images)
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["images"] {
			url, err := h.Media.Save("properties", fh)
			if err != nil {
				applog.Error(c, "admin.properties.upload.fail", err, map[string]any{"file": fh.Filename})
				continue
			}
			images = append(images, url)
		}
	}
	if images == nil {
		images = []string{}
	}
	b, _ = json.Marshal(images)
	p.ImagesJSON = string(b)

	return p, true
}

// POST /admin/properties
func (h *AdminPropertyHandler) Create(c *fiber.Ctx) error {
	p, ok := h.fromForm(c)
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	p.ID = "" // service assigns
	created, err := h.Listings.Create(p)
	if err != nil {
		applog.Error(c, "admin.properties.create.fail", err, nil)
		return c.Status(400).SendString("could not save property")
	}
	applog.Audit(c, "admin.properties.create", map[string]any{"property_id": created.ID})
	return c.Redirect("/admin/properties")
}

// POST /admin/properties/:id
func (h *AdminPropertyHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	p, okForm := h.fromForm(c)
	if !okForm {
		return c.Status(400).SendString("invalid input")
	}
	p.ID = id
	if err := h.Listings.Update(p); err != nil {
		applog.Error(c, "admin.properties.update.fail", err, map[string]any{"property_id": id})
		return c.Status(400).SendString("could not save property")
	}
	applog.Audit(c, "admin.properties.update", map[string]any{"property_id": id})
	return c.Redirect("/admin/properties")
}

// POST /admin/properties/:id/delete
func (h *AdminPropertyHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	if err := h.Listings.Delete(id); err != nil {
		applog.Error(c, "admin.properties.delete.fail", err, map[string]any{"property_id": id})
		return c.Status(400).SendString("could not delete property")
	}
	applog.Audit(c, "admin.properties.delete", map[string]any{"property_id": id})
	return c.Redirect("/admin/properties")
}
