package handlers

import (
	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/gofiber/fiber/v2"
)

type LeaderboardUser struct {
	Username          string  `json:"username"`
	Points            int     `json:"points"`
	Level             int     `json:"level"`
	Rank              string  `json:"rank"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

func GetLeaderboard(c *fiber.Ctx) error {
	var leaderboard []LeaderboardUser

	err := database.DB.Model(&models.User{}).
		Select("username", "points", "level", "rank", "profile_picture_url").
		Order("points desc").
		Limit(10).
		Find(&leaderboard).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve leaderboard"})
	}

	return c.JSON(leaderboard)
}

func ListMyCertificates(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var certificates []models.RankCertificate
	database.DB.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates)

	return c.JSON(certificates)
}
