package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"

	"lumiere/internal/http/handlers"
	"lumiere/internal/repos"
	"lumiere/internal/services"
)

func loginApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repos.SeedAdmin(db, "admin@lumiere.test", "Sup3rSecret!"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	authSvc := services.NewAuthService(repos.NewUserRepo(db))
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 3, Expiration: time.Minute}), authH.Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, csrfTok, email, password string) *http.Response {
	t.Helper()
	form := strings.NewReader("csrf=" + csrfTok + "&email=" + email + "&password=" + password)
	req := httptest.NewRequest("POST", "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestLogin_WrongCredentialsRejected(t *testing.T) {
	app := loginApp(t)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := cookieValue(respForm, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	resp := postLogin(t, app, csrfTok, "wrong@x.com", "wrongpass1!")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Invalid credentials") {
		t.Fatalf("expected invalid-credentials message, body=%s", body)
	}
}

func TestLogin_CorrectCredentialsRedirect(t *testing.T) {
	app := loginApp(t)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := cookieValue(respForm, "csrf_")

	resp := postLogin(t, app, csrfTok, "admin@lumiere.test", "Sup3rSecret!")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect on success, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin" {
		t.Fatalf("admin login should land on /admin, got %q", loc)
	}
	if cookieValue(resp, "sid") == "" {
		t.Fatal("session cookie missing after login")
	}
}

func TestLogin_Throttled(t *testing.T) {
	app := loginApp(t)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := cookieValue(respForm, "csrf_")

	for i := 0; i < 3; i++ {
		postLogin(t, app, csrfTok, "wrong@x.com", "wrongpass1!")
	}
	resp := postLogin(t, app, csrfTok, "wrong@x.com", "wrongpass1!")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", resp.StatusCode)
	}
}
