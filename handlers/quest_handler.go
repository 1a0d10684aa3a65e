package handlers

import (
	"errors"

	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/abdulhameed-s/leveling_tracker/services"
	"github.com/abdulhameed-s/leveling_tracker/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type QuestHandler struct {
	Service *services.QuestService
}

func NewQuestHandler(service *services.QuestService) *QuestHandler {
	return &QuestHandler{Service: service}
}

type CompleteQuestRequest struct {
	QuestID string `json:"quest_id" validate:"required,uuid"`
}

// GetQuests ensures the user's quests are fresh before listing them.
// An optional ?period= query narrows the list to one cadence.
func (h *QuestHandler) GetQuests(c *fiber.Ctx) error {
	userID := currentUserID(c)

	period := c.Query("period")
	if period != "" && !models.ValidCadence(period) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "period must be daily, weekly or monthly"})
	}

	found, err := h.Service.EnsureFreshQuests(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to refresh quests"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	quests, err := h.Service.ListQuests(userID, period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list quests"})
	}

	return c.JSON(quests)
}

func (h *QuestHandler) CompleteQuest(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CompleteQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	questID, _ := uuid.Parse(req.QuestID)

	result, err := h.Service.CompleteQuest(userID, questID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quest not found"})
		case errors.Is(err, services.ErrQuestAlreadyCompleted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Quest already completed"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete quest"})
		}
	}

	eventType := "quest_completed"
	switch {
	case result.RankedUp:
		eventType = "rank_up"
		go services.IssueRankCertificate(userID, result.Rank)
	case result.LeveledUp:
		eventType = "level_up"
	}
	websocket.NotifyProgress(userID, websocket.ProgressEvent{
		Type:    eventType,
		QuestID: result.QuestID.String(),
		Points:  result.Points,
		Level:   result.Level,
		Rank:    result.Rank,
	})

	return c.JSON(fiber.Map{
		"success":  true,
		"quest_id": result.QuestID,
		"points":   result.Points,
		"level":    result.Level,
		"rank":     result.Rank,
	})
}

func (h *QuestHandler) RegenerateQuests(c *fiber.Ctx) error {
	userID := currentUserID(c)

	found, err := h.Service.EnsureFreshQuests(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to regenerate quests"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Quests regenerated successfully"})
}
