package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"lumiere/internal/domain"
)

func adminGet(t *testing.T, app *fiber.App, sid, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestPropertyEditForm_RoundTripsStoredState(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSID(t, db)

	// prop-marina is seeded as APARTMENT / FOR_RENT with three features.
	resp := adminGet(t, app, sid, "/admin/properties/prop-marina/edit")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)

	if !strings.Contains(body, "<option selected>APARTMENT</option>") {
		t.Fatal("stored type not preselected in edit form")
	}
	if !strings.Contains(body, "<option selected>FOR_RENT</option>") {
		t.Fatal("stored status not preselected in edit form")
	}
	if strings.Contains(body, "<option selected>VILLA</option>") {
		t.Fatal("default type must not be preselected for an APARTMENT")
	}
	for _, feature := range []string{"Harbor View", "Concierge", "Valet"} {
		if !strings.Contains(body, feature) {
			t.Fatalf("stored feature %q missing from edit form", feature)
		}
	}
}

func TestPropertyUpdate_PreservesStatusAndFeatures(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSID(t, db)

	respForm := adminGet(t, app, sid, "/admin/properties/prop-marina/edit")
	csrfTok := cookieValue(respForm, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing on edit form")
	}

	// Resubmit the form as the browser now renders it, touching only the price.
	form := url.Values{
		"csrf":        {csrfTok},
		"title":       {"Marina Residence 21B"},
		"description": {"Furnished two-bedroom with harbor views, available seasonally."},
		"price":       {"29500"},
		"location":    {"Marina del Rey, California"},
		"bedrooms":    {"2"},
		"bathrooms":   {"2"},
		"area_sq_ft":  {"1650"},
		"type":        {"APARTMENT"},
		"status":      {"FOR_RENT"},
		"features":    {"Harbor View\nConcierge\nValet"},
		"agent_name":  {"Vivienne Laurent"},
		"agent_phone": {"+1 310 555 0101"},
		"images_json": {`["properties/prop-marina/main.jpg"]`},
	}
	req := httptest.NewRequest("POST", "/admin/properties/prop-marina", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect after save, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var p domain.Property
	err = db.Get(&p, `SELECT id, type, status, COALESCE(features_json,'') AS features_json, price FROM properties WHERE id='prop-marina'`)
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 29500 {
		t.Fatalf("edited price not saved, got %d", p.Price)
	}
	if p.Type != "APARTMENT" || p.Status != "FOR_RENT" {
		t.Fatalf("type/status reset on save: %s/%s", p.Type, p.Status)
	}
	if !strings.Contains(p.Features, "Harbor View") || !strings.Contains(p.Features, "Valet") {
		t.Fatalf("features wiped on save: %s", p.Features)
	}
}

func TestPostEditForm_RoundTripsStoredState(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSID(t, db)

	// post-welcome is seeded PUBLISHED with category Market.
	resp := adminGet(t, app, sid, "/admin/posts/post-welcome/edit")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)

	if !strings.Contains(body, "<option selected>PUBLISHED</option>") {
		t.Fatal("stored post status not preselected in edit form")
	}
	if strings.Contains(body, "<option selected>DRAFT</option>") {
		t.Fatal("DRAFT must not be preselected for a published post")
	}
	if !strings.Contains(body, `name="categories" value="Market"`) {
		t.Fatal("stored categories missing from edit form")
	}
}
