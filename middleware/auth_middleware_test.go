package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/pgym_booking/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(), func(c *fiber.Ctx) error {
		id, ok := MemberID(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(id.String())
	})
	app.Get("/admin", Protected(), AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-secret")
	app := newProtectedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAdminRequiredChecksRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-secret")
	app := newProtectedApp()

	tests := []struct {
		role string
		want int
	}{
		{"member", fiber.StatusForbidden},
		{"admin", fiber.StatusOK},
	}
	for _, tt := range tests {
		token, err := utils.IssueSessionToken(uuid.New(), tt.role, time.Now())
		if err != nil {
			t.Fatalf("IssueSessionToken: %v", err)
		}
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != tt.want {
			t.Fatalf("role %s: expected %d, got %d", tt.role, tt.want, resp.StatusCode)
		}
	}
}
