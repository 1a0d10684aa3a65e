package routes

import (
	"github.com/abdulhameed-s/leveling_tracker/handlers"
	"github.com/abdulhameed-s/leveling_tracker/middleware"
	"github.com/gofiber/fiber/v2"
)

func QuestRoutes(app *fiber.App, questHandler *handlers.QuestHandler) {
	api := app.Group("/api/v1")

	quests := api.Group("/quests", middleware.Protected())
	quests.Get("", questHandler.GetQuests)
	quests.Post("/complete", questHandler.CompleteQuest)
	quests.Post("/regenerate", questHandler.RegenerateQuests)
}
