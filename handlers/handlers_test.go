package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/anjiri1684/pgym_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func TestStatusForMapsLedgerConditions(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrInsufficientCredit, fiber.StatusPaymentRequired},
		{services.ErrCapacityExceeded, fiber.StatusConflict},
		{services.ErrAlreadyBooked, fiber.StatusConflict},
		{fmt.Errorf("%w: duration 0", services.ErrInvalidConfiguration), fiber.StatusUnprocessableEntity},
		{services.ErrNotFound, fiber.StatusNotFound},
		{services.ErrMissingIdentity, fiber.StatusBadRequest},
		{services.ErrInvalidToken, fiber.StatusUnauthorized},
		{services.ErrRateLimited, fiber.StatusTooManyRequests},
		{fmt.Errorf("booking: %w", services.ErrCapacityExceeded), fiber.StatusConflict},
		{errors.New("connection refused"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got, _ := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestStatusForHidesInternalErrors(t *testing.T) {
	_, msg := statusFor(errors.New("pq: password authentication failed"))
	if strings.Contains(msg, "password") {
		t.Fatalf("internal error leaked to user: %q", msg)
	}
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/sessions", ListSessions)
	app.Get("/sessions/:id", GetSession)
	app.Post("/sessions/:id/book", BookSession)
	app.Post("/auth/register", Register)
	app.Post("/auth/magic-link", RequestMagicLink)
	app.Post("/auth/login", Login)
	app.Post("/admin/sessions", CreateSession)
	app.Put("/admin/settings", UpdateSettings)
	app.Post("/admin/members/:memberId/packages", GrantPackage)
	return app
}

func errorOf(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload map[string]interface{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	msg, _ := payload["error"].(string)
	return msg
}

func TestRequestValidationHappensBeforeStorage(t *testing.T) {
	sessionID := uuid.NewString()
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   string
	}{
		{"bad start date", "GET", "/sessions?start=03-04-2030", "", "Invalid start date"},
		{"inverted range", "GET", "/sessions?start=2030-03-10&end=2030-03-01", "", "End date must not be before start date"},
		{"range too long", "GET", "/sessions?start=2030-01-01&end=2030-12-31", "", "three months"},
		{"bad session id", "GET", "/sessions/not-a-uuid", "", "Invalid session ID"},
		{"book bad id", "POST", "/sessions/42/book", `{"name":"Lena"}`, "Invalid session ID"},
		{"book without identity", "POST", "/sessions/" + sessionID + "/book", `{"phone":"079"}`, "Name"},
		{"book bad email", "POST", "/sessions/" + sessionID + "/book", `{"name":"Lena","email":"nope"}`, "Email"},
		{"book bad json", "POST", "/sessions/" + sessionID + "/book", `{`, "Cannot parse JSON"},
		{"register without email", "POST", "/auth/register", `{"name":"Lena"}`, "Email"},
		{"magic link bad email", "POST", "/auth/magic-link", `{"email":"lena"}`, "Email"},
		{"login without password", "POST", "/auth/login", `{"email":"a@b.ch"}`, "Password"},
		{"session bad date", "POST", "/admin/sessions", `{"title":"Yoga","date":"tomorrow","start_time":"09:00","end_time":"10:00","capacity":8}`, "Invalid date"},
		{"session bad clock", "POST", "/admin/sessions", `{"title":"Yoga","date":"2030-03-04","start_time":"9am","end_time":"10:00","capacity":8}`, "expected HH:MM"},
		{"settings zero duration", "PUT", "/admin/settings", `{"personal_duration_min":0}`, "PersonalDurationMin"},
		{"grant nothing", "POST", "/admin/members/" + sessionID + "/packages", `{}`, "Either package_id or credits"},
		{"grant bad member", "POST", "/admin/members/x/packages", `{"credits":5}`, "Invalid member ID"},
	}

	app := newTestApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			if msg := errorOf(t, resp.Body); !strings.Contains(msg, tt.want) {
				t.Fatalf("expected error containing %q, got %q", tt.want, msg)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	d, err := parseClock("07:45")
	if err != nil || d.Minutes() != 7*60+45 {
		t.Fatalf("unexpected %s, %v", d, err)
	}
	if _, err := parseClock("25:00"); err == nil {
		t.Fatal("expected error for 25:00")
	}
}

func TestRespondErrorLogsBookingRefusalsSeparately(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	tests := []struct {
		err     error
		code    int
		logLine string
	}{
		{fmt.Errorf("book: %w", services.ErrCapacityExceeded), fiber.StatusConflict, "Booking refused (409)"},
		{services.ErrInsufficientCredit, fiber.StatusPaymentRequired, "Booking refused (402)"},
		{errors.New("connection refused"), fiber.StatusInternalServerError, "[ERROR] connection refused"},
		{services.ErrInvalidToken, fiber.StatusUnauthorized, "GET /fail: login link"},
	}
	for _, tt := range tests {
		buf.Reset()
		app := fiber.New()
		err := tt.err
		app.Get("/fail", func(c *fiber.Ctx) error { return respondError(c, err) })

		resp, testErr := app.Test(httptest.NewRequest("GET", "/fail", nil))
		if testErr != nil {
			t.Fatalf("app.Test: %v", testErr)
		}
		if resp.StatusCode != tt.code {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.code, resp.StatusCode)
		}
		if !strings.Contains(buf.String(), tt.logLine) {
			t.Fatalf("%v: expected log containing %q, got %q", tt.err, tt.logLine, buf.String())
		}
	}
}
