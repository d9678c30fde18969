package handlers

import (
	"errors"

	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/events"
	"github.com/anjiri1684/pgym_booking/middleware"
	"github.com/anjiri1684/pgym_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetMe(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	member, err := services.GetMember(database.DB, memberID)
	if err != nil {
		return respondError(c, err)
	}

	pkg, err := services.CurrentPackage(database.DB, memberID, now())
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return respondError(c, err)
	}
	credits, err := services.CreditBalance(database.DB, memberID, now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"member": member, "credits": credits, "package": pkg})
}

// GetMyBookings lists upcoming bookings; ?all=true includes past ones.
func GetMyBookings(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	from := today()
	if c.QueryBool("all") {
		from = from.AddDate(-100, 0, 0)
	}
	bookings, err := services.MemberBookings(database.DB, memberID, from)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}

// BookForMe books a class for the signed-in member.
func BookForMe(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	sessionID, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	member, err := services.GetMember(database.DB, memberID)
	if err != nil {
		return respondError(c, err)
	}
	identity := services.MemberIdentity{Name: member.Name}
	if member.Email != nil {
		identity.Email = *member.Email
	}
	return book(c, identity, sessionID)
}

// CancelMyBooking lets a member cancel their own booking. Credit is not refunded.
func CancelMyBooking(c *fiber.Ctx) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, ok := parseID(c.Params("bookingId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	existing, err := services.GetBooking(database.DB, bookingID)
	if err != nil {
		return respondError(c, err)
	}
	if existing.MemberID != memberID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only cancel your own bookings"})
	}
	return cancel(c, bookingID)
}

func cancel(c *fiber.Ctx, bookingID uuid.UUID) error {
	booking, err := services.Cancel(c.UserContext(), database.DB, bookingID)
	if err != nil {
		return respondError(c, err)
	}
	announce(c.UserContext(), events.BookingCanceled, *booking)
	return c.JSON(fiber.Map{"message": "Booking canceled", "booking": booking})
}
