package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/anjiri1684/pgym_booking/services"
	"github.com/gofiber/fiber/v2"
)

var now = time.Now

// statusFor maps a ledger or service condition to an HTTP status and the
// message shown to the user. Unknown errors become 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInsufficientCredit):
		return fiber.StatusPaymentRequired, "You have no credits left. Please buy a package."
	case errors.Is(err, services.ErrCapacityExceeded):
		return fiber.StatusConflict, "This class is full."
	case errors.Is(err, services.ErrAlreadyBooked):
		return fiber.StatusConflict, "You are already booked for this class."
	case errors.Is(err, services.ErrInvalidConfiguration):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrMissingIdentity):
		return fiber.StatusBadRequest, "Please enter your name or email."
	case errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized, "This login link is invalid or has expired."
	case errors.Is(err, services.ErrRateLimited):
		return fiber.StatusTooManyRequests, "Too many login links requested. Please try again later."
	default:
		return fiber.StatusInternalServerError, "Something went wrong"
	}
}

func respondError(c *fiber.Ctx, err error) error {
	code, message := statusFor(err)
	switch {
	case services.IsBookingError(err):
		log.Printf("Booking refused (%d) %s %s: %v", code, c.Method(), c.Path(), err)
	case code >= fiber.StatusInternalServerError:
		log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
