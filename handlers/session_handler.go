package handlers

import (
	"context"
	"log"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/events"
	"github.com/anjiri1684/pgym_booking/models"
	"github.com/anjiri1684/pgym_booking/services"
	"github.com/anjiri1684/pgym_booking/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListSessions returns the calendar between start and end (YYYY-MM-DD,
// inclusive). Without parameters it shows today plus the configured horizon.
func ListSessions(c *fiber.Ctx) error {
	start := today()
	end := start.AddDate(0, 0, 7*config.Int("DEFAULT_WEEKS_AHEAD", 4))

	if s := c.Query("start"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start date, expected YYYY-MM-DD"})
		}
		start = d
	}
	if s := c.Query("end"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end date, expected YYYY-MM-DD"})
		}
		end = d
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End date must not be before start date"})
	}
	if end.Sub(start).Hours() > 24*92 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date range is limited to three months"})
	}

	sessions, err := services.SessionsInRange(database.DB, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sessions)
}

func GetSession(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	view, err := services.GetSessionView(database.DB, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

type BookRequest struct {
	Name  string `json:"name" validate:"required_without=Email,max=255"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

func (r BookRequest) identity() services.MemberIdentity {
	return services.MemberIdentity{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// BookSession is the public booking form: the visitor identifies themselves
// by name and optional email.
func BookSession(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return book(c, req.identity(), id)
}

func book(c *fiber.Ctx, identity services.MemberIdentity, sessionID uuid.UUID) error {
	booking, err := services.Book(c.UserContext(), database.DB, identity, sessionID, now())
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("✅ Booking %s created for %s on session %s", booking.ID, booking.Member.Name, booking.ClassSessionID)
	announce(c.UserContext(), events.BookingCreated, *booking)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking confirmed",
		"booking": booking,
		"invite":  services.InviteFor(*booking, config.Location()),
	})
}

// announce tells the calendar hub and the notification bus that a booking
// changed the session's availability.
func announce(ctx context.Context, subject string, b models.Booking) {
	spots, capacity := 0, b.ClassSession.Capacity
	if view, err := services.GetSessionView(database.DB, b.ClassSessionID); err == nil {
		spots, capacity = view.SpotsLeft, view.Capacity
	} else {
		log.Printf("Failed to reload session %s for availability update: %v", b.ClassSessionID, err)
	}

	websocket.NotifyAvailability(websocket.Availability{
		SessionID: b.ClassSessionID.String(),
		SpotsLeft: spots,
		Capacity:  capacity,
	})
	events.Emit(ctx, subject, events.BookingEvent{
		Invite:     services.InviteFor(b, config.Location()),
		SessionID:  b.ClassSessionID.String(),
		MemberID:   b.MemberID.String(),
		SpotsLeft:  spots,
		OccurredAt: now(),
	})
}
