package routes

import (
	"github.com/abdulhameed-s/leveling_tracker/handlers"
	"github.com/abdulhameed-s/leveling_tracker/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func GamificationRoutes(app *fiber.App, voiceHandler *handlers.VoiceHandler) {
	api := app.Group("/api/v1")

	gamification := api.Group("/gamification")
	gamification.Get("/leaderboard", handlers.GetLeaderboard)

	userGamification := api.Group("/gamification", middleware.Protected())
	userGamification.Get("/certificates/me", handlers.ListMyCertificates)

	voice := api.Group("/voice", middleware.Protected())
	voice.Post("/command", voiceHandler.HandleCommand)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/progress", websocket.New(handlers.ServeProgressWs))
}
