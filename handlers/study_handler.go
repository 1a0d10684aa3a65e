package handlers

import (
	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/abdulhameed-s/leveling_tracker/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateStudyLogRequest struct {
	Subject   string  `json:"subject" validate:"required,max=100"`
	Duration  int     `json:"duration" validate:"required,gt=0"` // minutes
	Notes     *string `json:"notes"`
	StartedAt string  `json:"started_at"`
	EndedAt   string  `json:"ended_at"`
}

// CreateStudyLog records a study session and credits points scaled by
// duration: one point per five minutes, at least one.
func CreateStudyLog(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateStudyLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	earnedPoints := req.Duration / 5
	if earnedPoints < 1 {
		earnedPoints = 1
	}

	var totalPoints int
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		studyLog := models.StudyLog{
			UserID:    userID,
			Subject:   req.Subject,
			Duration:  req.Duration,
			Notes:     req.Notes,
			StartedAt: req.StartedAt,
			EndedAt:   req.EndedAt,
		}
		if err := tx.Create(&studyLog).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		user.Points += earnedPoints
		user.Wisdom += earnedPoints / 2
		user.Level = services.LevelForPoints(user.Points)
		user.Rank = services.RankForPoints(user.Points)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		totalPoints = user.Points
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save study log"})
	}

	return c.JSON(fiber.Map{"success": true, "points": totalPoints, "earned": earnedPoints})
}

func ListStudyLogs(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var logs []models.StudyLog
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&logs)

	return c.JSON(logs)
}

func DeleteStudyLog(c *fiber.Ctx) error {
	userID := currentUserID(c)
	logID, err := uuid.Parse(c.Params("logId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid study log id"})
	}

	result := database.DB.Where("id = ? AND user_id = ?", logID, userID).Delete(&models.StudyLog{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete study log"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Study log not found"})
	}

	return c.JSON(fiber.Map{"message": "Study log deleted successfully!"})
}
