package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/abdulhameed-s/leveling_tracker/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoiceHandler turns transcribed voice commands into the same operations the
// regular endpoints perform. The parser is a plain keyword dispatcher.
type VoiceHandler struct {
	Quests *services.QuestService
}

func NewVoiceHandler(quests *services.QuestService) *VoiceHandler {
	return &VoiceHandler{Quests: quests}
}

type VoiceCommandRequest struct {
	Command string `json:"command"`
}

func (h *VoiceHandler) HandleCommand(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req VoiceCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	cmd := strings.ToLower(strings.TrimSpace(req.Command))
	if cmd == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No command provided."})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	switch {
	case strings.HasPrefix(cmd, "add task"):
		taskName := strings.TrimSpace(strings.TrimPrefix(cmd, "add task"))
		if taskName == "" {
			return c.JSON(fiber.Map{"success": false, "message": "No task name provided."})
		}
		task := models.Task{UserID: userID, Title: taskName}
		if err := database.DB.Create(&task).Error; err != nil {
			return c.JSON(fiber.Map{"success": false, "message": "Could not add task."})
		}
		return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("Task '%s' added!", taskName)})

	case strings.HasPrefix(cmd, "complete task"):
		rest := strings.TrimSpace(strings.TrimPrefix(cmd, "complete task"))
		taskID, err := uuid.Parse(rest)
		if err != nil {
			return c.JSON(fiber.Map{"success": false, "message": "Invalid task ID."})
		}
		points, err := services.CompleteTask(database.DB, userID, taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				return c.JSON(fiber.Map{"success": false, "message": "Task not found or not yours."})
			}
			return c.JSON(fiber.Map{"success": false, "message": "Could not complete task."})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Task marked complete!",
			"points":  points,
		})

	case strings.HasPrefix(cmd, "complete quest"):
		rest := strings.TrimSpace(strings.TrimPrefix(cmd, "complete quest"))
		questID, err := uuid.Parse(rest)
		if err != nil {
			return c.JSON(fiber.Map{"success": false, "message": "Invalid quest ID."})
		}
		result, err := h.Quests.CompleteQuest(userID, questID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrQuestNotFound):
				return c.JSON(fiber.Map{"success": false, "message": "Quest not found or not yours."})
			case errors.Is(err, services.ErrQuestAlreadyCompleted):
				return c.JSON(fiber.Map{"success": false, "message": "Quest already completed."})
			default:
				return c.JSON(fiber.Map{"success": false, "message": "Could not complete quest."})
			}
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Quest completed!",
			"points":  result.Points,
		})

	case strings.Contains(cmd, "show task"):
		var tasks []models.Task
		database.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(5).Find(&tasks)
		if len(tasks) == 0 {
			return c.JSON(fiber.Map{"success": true, "message": "You have no tasks."})
		}
		titles := make([]string, len(tasks))
		for i, t := range tasks {
			titles[i] = t.Title
		}
		return c.JSON(fiber.Map{"success": true, "message": "Your latest tasks are: " + strings.Join(titles, ", ")})

	case strings.HasPrefix(cmd, "log study"):
		parts := strings.Fields(cmd)
		if len(parts) < 4 {
			return c.JSON(fiber.Map{"success": false, "message": "Usage: log study <subject> <minutes>"})
		}
		duration, err := strconv.Atoi(parts[3])
		if err != nil || duration <= 0 {
			return c.JSON(fiber.Map{"success": false, "message": "Invalid duration."})
		}
		subject := parts[2]

		earned := duration / 5
		if earned < 1 {
			earned = 1
		}
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			studyLog := models.StudyLog{UserID: userID, Subject: subject, Duration: duration}
			if err := tx.Create(&studyLog).Error; err != nil {
				return err
			}
			user.Points += earned
			user.Level = services.LevelForPoints(user.Points)
			user.Rank = services.RankForPoints(user.Points)
			return tx.Save(&user).Error
		})
		if err != nil {
			return c.JSON(fiber.Map{"success": false, "message": "Could not log study session."})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("Logged %d min of %s study.", duration, subject),
			"earned":  earned,
			"points":  user.Points,
		})

	case strings.Contains(cmd, "points"):
		return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("You currently have %d points.", user.Points)})

	case strings.Contains(cmd, "rank"):
		return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("You are rank %s, level %d.", services.RankForPoints(user.Points), services.LevelForPoints(user.Points))})

	case strings.Contains(cmd, "hello"), strings.Contains(cmd, "hi"):
		return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("Hello %s! How can I assist you today?", user.Username)})
	}

	return c.JSON(fiber.Map{"success": false, "message": "Command not recognized."})
}
