package routes

import (
	"github.com/abdulhameed-s/leveling_tracker/handlers"
	"github.com/abdulhameed-s/leveling_tracker/middleware"
	"github.com/gofiber/fiber/v2"
)

func TaskRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tasks := api.Group("/tasks", middleware.Protected())
	tasks.Get("", handlers.ListTasks)
	tasks.Post("", handlers.CreateTask)
	tasks.Get("/latest", handlers.LatestTask)
	tasks.Post("/:taskId/complete", handlers.CompleteTask)
	tasks.Delete("/:taskId", handlers.DeleteTask)
}
