package main

import (
	"log"
	"time"

	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/handlers"
	"github.com/abdulhameed-s/leveling_tracker/jobs"
	"github.com/abdulhameed-s/leveling_tracker/notifications"
	"github.com/abdulhameed-s/leveling_tracker/routes"
	"github.com/abdulhameed-s/leveling_tracker/services"
	"github.com/abdulhameed-s/leveling_tracker/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	notifications.InitEmailService()

	// Quest regeneration stays lazy (triggered on read); cron only handles
	// task alarm reminders.
	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.SendTaskAlarmReminders)
	go c.Start()
	log.Println("✅ Cron job for task reminders scheduled successfully.")

	questService := services.NewQuestService(database.DB, services.DefaultQuestConfig())
	questHandler := handlers.NewQuestHandler(questService)
	voiceHandler := handlers.NewVoiceHandler(questService)

	app := fiber.New(fiber.Config{
		AppName:       "Leveling Tracker",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Leveling Tracker API",
		})
	})

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.TaskRoutes(app)
	routes.StudyRoutes(app)
	routes.QuestRoutes(app, questHandler)
	routes.GamificationRoutes(app, voiceHandler)
	routes.UploadRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
