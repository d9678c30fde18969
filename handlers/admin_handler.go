package handlers

import (
	"log"
	"time"

	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/services"
	"github.com/anjiri1684/pgym_booking/websocket"
	"github.com/gofiber/fiber/v2"
)

type SessionRequest struct {
	Title     string  `json:"title" validate:"required,max=255"`
	Coach     *string `json:"coach" validate:"omitempty,max=255"`
	Date      string  `json:"date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Capacity  int     `json:"capacity" validate:"gte=0"`
	Location  *string `json:"location" validate:"omitempty,max=255"`
}

func (r SessionRequest) input() (services.SessionInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return services.SessionInput{}, fiber.NewError(fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}
	start, err := parseClock(r.StartTime)
	if err != nil {
		return services.SessionInput{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	end, err := parseClock(r.EndTime)
	if err != nil {
		return services.SessionInput{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return services.SessionInput{
		Title:     r.Title,
		Coach:     r.Coach,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Capacity:  r.Capacity,
		Location:  r.Location,
	}, nil
}

func parseSessionRequest(c *fiber.Ctx) (services.SessionInput, error) {
	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return services.SessionInput{}, fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return services.SessionInput{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return req.input()
}

func badRequest(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}
	return respondError(c, err)
}

func CreateSession(c *fiber.Ctx) error {
	in, err := parseSessionRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	session, err := services.CreateSession(database.DB, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func UpdateSession(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	in, err := parseSessionRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	view, err := services.UpdateSession(c.UserContext(), database.DB, id, in)
	if err != nil {
		return respondError(c, err)
	}
	websocket.NotifyAvailability(websocket.Availability{SessionID: view.ID.String(), SpotsLeft: view.SpotsLeft, Capacity: view.Capacity})
	return c.JSON(view)
}

func DeleteSession(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	removed, err := services.DeleteSession(c.UserContext(), database.DB, id)
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("Session %s deleted together with %d bookings", id, removed)
	websocket.NotifyAvailability(websocket.Availability{SessionID: id.String(), Deleted: true})
	return c.JSON(fiber.Map{"message": "Session deleted", "bookings_removed": removed})
}

func GetRoster(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	roster, err := services.Roster(database.DB, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(roster)
}

// AdminBook books a member onto a session on their behalf, with the same
// credit and capacity rules as the public form.
func AdminBook(c *fiber.Ctx) error {
	return BookSession(c)
}

func AdminCancelBooking(c *fiber.Ctx) error {
	bookingID, ok := parseID(c.Params("bookingId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}
	return cancel(c, bookingID)
}

func GetSettings(c *fiber.Ctx) error {
	settings, err := services.LoadSettings(database.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

type SettingsRequest struct {
	WeeksAhead          *int    `json:"weeks_ahead" validate:"omitempty,gte=0,lte=52"`
	PersonalCapacity    *int    `json:"personal_capacity" validate:"omitempty,gte=0"`
	PersonalDurationMin *int    `json:"personal_duration_min" validate:"omitempty,gt=0,lte=720"`
	PersonalCoach       *string `json:"personal_coach" validate:"omitempty,max=255"`
}

func UpdateSettings(c *fiber.Ctx) error {
	var req SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	settings, err := services.UpdateSettings(database.DB, services.SettingsPatch{
		WeeksAhead:          req.WeeksAhead,
		PersonalCapacity:    req.PersonalCapacity,
		PersonalDurationMin: req.PersonalDurationMin,
		PersonalCoach:       req.PersonalCoach,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// GenerateSlots runs a generation pass now with the current settings.
func GenerateSlots(c *fiber.Ctx) error {
	snapshot, err := services.CurrentSnapshot(database.DB)
	if err != nil {
		return respondError(c, err)
	}
	started := time.Now()
	report, err := services.GeneratePersonalSlots(c.UserContext(), database.DB, snapshot, today())
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("✅ Slot generation: %d created, %d skipped over %d days in %s", report.Created, report.Skipped, report.Days, time.Since(started))
	return c.JSON(report)
}

func ListMembers(c *fiber.Ctx) error {
	members, err := services.ListMembers(database.DB, c.Query("q"), now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(members)
}
