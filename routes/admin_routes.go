package routes

import (
	"github.com/anjiri1684/pgym_booking/handlers"
	"github.com/anjiri1684/pgym_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	sessions := admin.Group("/sessions")
	sessions.Post("", handlers.CreateSession)
	sessions.Put("/:id", handlers.UpdateSession)
	sessions.Delete("/:id", handlers.DeleteSession)
	sessions.Get("/:id/roster", handlers.GetRoster)
	sessions.Post("/:id/roster", handlers.AdminBook)

	admin.Delete("/bookings/:bookingId", handlers.AdminCancelBooking)

	packages := admin.Group("/packages")
	packages.Get("", handlers.AdminListPackages)
	packages.Post("", handlers.CreatePackage)
	packages.Put("/:packageId", handlers.UpdatePackage)
	packages.Delete("/:packageId", handlers.DeletePackage)

	members := admin.Group("/members")
	members.Get("", handlers.ListMembers)
	members.Post("/:memberId/packages", handlers.GrantPackage)

	admin.Get("/settings", handlers.GetSettings)
	admin.Put("/settings", handlers.UpdateSettings)
	admin.Post("/slots/generate", handlers.GenerateSlots)
}
