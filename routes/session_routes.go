package routes

import (
	"github.com/anjiri1684/pgym_booking/handlers"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions")
	sessions.Get("", handlers.ListSessions)
	sessions.Get("/:id", handlers.GetSession)
	sessions.Post("/:id/book", handlers.BookSession)

	api.Get("/packages", handlers.ListPackages)
}
