package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newAuthApp(adminToken string) *fiber.App {
	app := fiber.New()
	app.Use(AdminAuthRequired(adminToken))
	app.Get("/admin/questions", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestAdminAuthAcceptsHeaderToken(t *testing.T) {
	app := newAuthApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/admin/questions", nil)
	req.Header.Set(AdminTokenHeader, "secret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAdminAuthAcceptsQueryTokenFallback(t *testing.T) {
	app := newAuthApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/admin/questions?token=secret", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAdminAuthRejectsMissingOrWrongToken(t *testing.T) {
	app := newAuthApp("secret")

	for _, path := range []string{"/admin/questions", "/admin/questions?token=wrong"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", path, resp.StatusCode)
		}
	}
}

func TestAdminAuthHeaderWinsOverQuery(t *testing.T) {
	app := newAuthApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/admin/questions?token=secret", nil)
	req.Header.Set(AdminTokenHeader, "wrong")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
