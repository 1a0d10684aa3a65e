package routes

import (
	"github.com/abdulhameed-s/leveling_tracker/handlers"
	"github.com/abdulhameed-s/leveling_tracker/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudyRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	studyLogs := api.Group("/study-logs", middleware.Protected())
	studyLogs.Get("", handlers.ListStudyLogs)
	studyLogs.Post("", handlers.CreateStudyLog)
	studyLogs.Delete("/:logId", handlers.DeleteStudyLog)
}
