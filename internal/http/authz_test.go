package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lumiere/internal/domain"
	"lumiere/internal/repos"
)

func TestAdmin_AnonymousRedirectsToLogin(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect for anonymous visitor, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("want /login, got %q", loc)
	}
}

func TestAdmin_AgentRoleForbidden(t *testing.T) {
	app, db, _ := newTestApp(t)

	users := repos.NewUserRepo(db)
	hash, err := bcrypt.GenerateFromPassword([]byte("agentpass1!"), 12)
	if err != nil {
		t.Fatal(err)
	}
	u := domain.User{
		ID: "u-" + uuid.NewString(), Email: "agent@lumiere.test",
		Name: "Field Agent", Hash: string(hash), Role: "AGENT",
	}
	if err := users.Insert(u); err != nil {
		t.Fatal(err)
	}
	sid := uuid.NewString()
	if err := users.BindSession(sid, u.ID); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/admin/leads", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("agent role must be forbidden from admin, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Access denied") {
		t.Fatalf("denial page missing message, body=%s", body)
	}
}

func TestAdmin_AdminSessionAdmitted(t *testing.T) {
	app, db, _ := newTestApp(t)

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

	req := httptest.NewRequest("GET", "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin session must reach the dashboard, got %d", resp.StatusCode)
	}
}
