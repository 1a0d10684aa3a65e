package routes

import (
	"github.com/abdulhameed-s/leveling_tracker/handlers"
	"github.com/abdulhameed-s/leveling_tracker/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
	profile.Get("/progress", handlers.GetMyProgress)
}
