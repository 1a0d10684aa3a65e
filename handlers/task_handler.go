package handlers

import (
	"errors"
	"time"

	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/abdulhameed-s/leveling_tracker/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=150"`
	Description *string `json:"description"`
	AlarmTime   *string `json:"alarm_time"` // RFC 3339
}

func ListTasks(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var tasks []models.Task
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&tasks)

	return c.JSON(tasks)
}

func CreateTask(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var alarmTime *time.Time
	if req.AlarmTime != nil && *req.AlarmTime != "" {
		parsed, err := time.Parse(time.RFC3339, *req.AlarmTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "alarm_time must be RFC 3339"})
		}
		alarmTime = &parsed
	}

	task := models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		AlarmTime:   alarmTime,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// CompleteTask marks a task done and credits a flat point reward plus a
// strength bump. Completing an already-done task is a no-op for points.
func CompleteTask(c *fiber.Ctx) error {
	userID := currentUserID(c)
	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}

	points, err := services.CompleteTask(database.DB, userID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete task"})
	}

	return c.JSON(fiber.Map{"success": true, "points": points})
}

func DeleteTask(c *fiber.Ctx) error {
	userID := currentUserID(c)
	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}

	result := database.DB.Where("id = ? AND user_id = ?", taskID, userID).Delete(&models.Task{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete task"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func LatestTask(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var task models.Task
	err := database.DB.Where("user_id = ? AND completed = ?", userID, false).
		Order("created_at desc").First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(nil)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch latest task"})
	}

	return c.JSON(fiber.Map{"id": task.ID, "title": task.Title})
}
