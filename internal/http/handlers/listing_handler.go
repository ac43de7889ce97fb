package handlers

import (
	"strings"

	applog "lumiere/internal/log"
	"lumiere/internal/repos"
	"lumiere/internal/services"
	"lumiere/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Listings *services.ListingService
	Leads    *services.LeadService
}

// Index renders /listings with optional filters; criteria left blank impose
// no constraint.
func (h *ListingHandler) Index(c *fiber.Ctx) error {
	f := repos.PropertyFilter{Query: strings.TrimSpace(c.Query("q"))}

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		tt, ok := validate.PropertyType(t)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "type", "value": t})
			return c.Status(fiber.StatusBadRequest).Render("listings", fiber.Map{
				"Properties": []any{}, "Count": 0, "Err": "Invalid property type",
			})
		}
		f.Type = tt
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		ss, ok := validate.PropertyStatus(st)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "status", "value": st})
			return c.Status(fiber.StatusBadRequest).Render("listings", fiber.Map{
				"Properties": []any{}, "Count": 0, "Err": "Invalid status filter",
			})
		}
		f.Status = ss
	}
	if v := c.Query("min_price"); v != "" {
		if n, ok := validate.Amount(v); ok {
			f.MinPrice = n
		}
	}
	if v := c.Query("max_price"); v != "" {
		if n, ok := validate.Amount(v); ok {
			f.MaxPrice = n
		}
	}
	if v := c.Query("min_beds"); v != "" {
		f.MinBeds = validate.Count(v)
	}

	props, err := h.Listings.Search(f, 1, 24)
	if err != nil {
		applog.Error(c, "listings.search.fail", err, nil)
		return failPage(c, "Could not load listings. Please retry.")
	}
	return render(c, "listings", fiber.Map{
		"Properties": props, "Count": len(props), "Filter": f,
	})
}

func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "property"})
		return notFound(c, "Property Not Found")
	}
	p, found, err := h.Listings.Get(id)
	if err != nil {
		applog.Error(c, "listing.get.fail", err, map[string]any{"property_id": id})
		return failPage(c, "Could not load this property. Please retry.")
	}
	if !found {
		return notFound(c, "Property Not Found")
	}
	return render(c, "listing_detail", fiber.Map{"P": p})
}

// Inquire handles viewing requests and offers posted from a listing page.
func (h *ListingHandler) Inquire(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Property Not Found")
	}
	p, found, err := h.Listings.Get(id)
	if err != nil || !found {
		return notFound(c, "Property Not Found")
	}

	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	phone, okPhone := validate.Phone(c.FormValue("phone"))
	message, okMsg := validate.Message(c.FormValue("message"))
	leadType, okType := validate.LeadType(c.FormValue("type"))
	if !okName || !okEmail || !okPhone || !okMsg || !okType || leadType == "GENERAL_INQUIRY" {
		applog.Security(c, "validation.fail", map[string]any{"form": "inquiry", "property_id": id})
		return c.Status(fiber.StatusBadRequest).Render("listing_detail", fiber.Map{
			"P": p, "Err": "Please check the form and try again.",
		})
	}

	if _, err := h.Leads.CreateForProperty(leadType, name, email, phone, message, p); err != nil {
		applog.Error(c, "lead.create.fail", err, map[string]any{"property_id": id})
		return c.Status(fiber.StatusInternalServerError).Render("listing_detail", fiber.Map{
			"P": p, "Err": "We could not record your request. Please try again.",
		})
	}
	applog.Audit(c, "lead.create", map[string]any{"type": leadType, "property_id": id})
	return render(c, "listing_detail", fiber.Map{
		"P": p, "Msg": "Thank you, an advisor will be in touch shortly.",
	})
}
