package routes

import (
	"github.com/anjiri1684/pgym_booking/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/magic-link", handlers.RequestMagicLink)
	auth.Get("/magic/:token", handlers.ConsumeMagicLink)
	auth.Post("/login", handlers.Login)
}
