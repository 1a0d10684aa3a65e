package routes

import (
	"github.com/abdulhameed-s/leveling_tracker/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/developers", handlers.GetDevelopers)
}
