package routes

import (
	"github.com/anjiri1684/pgym_booking/handlers"
	"github.com/anjiri1684/pgym_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func MemberRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	me := api.Group("/me", middleware.Protected())
	me.Get("", handlers.GetMe)
	me.Get("/bookings", handlers.GetMyBookings)
	me.Post("/sessions/:id/book", handlers.BookForMe)
	me.Delete("/bookings/:bookingId", handlers.CancelMyBooking)
}
