package routes

import (
	"github.com/abdulhameed-s/leveling_tracker/handlers"
	"github.com/abdulhameed-s/leveling_tracker/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected())
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
