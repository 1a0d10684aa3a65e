package handlers

import (
	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/abdulhameed-s/leveling_tracker/services"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Username          *string  `json:"username" validate:"omitempty,min=3,max=100"`
	Quote             *string  `json:"quote" validate:"omitempty,max=300"`
	ProfilePictureURL *string  `json:"profile_picture_url"`
	Age               *int     `json:"age" validate:"omitempty,gt=0"`
	HeightCm          *float64 `json:"height_cm" validate:"omitempty,gt=0"`
	WeightKg          *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	FitnessLevel      *string  `json:"fitness_level" validate:"omitempty,max=50"`
}

func GetProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Username != nil && *req.Username != user.Username {
		var count int64
		database.DB.Model(&models.User{}).Where("username = ?", *req.Username).Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username already taken"})
		}
		user.Username = *req.Username
	}
	if req.Quote != nil {
		user.Quote = *req.Quote
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}
	if req.FitnessLevel != nil {
		user.FitnessLevel = *req.FitnessLevel
	}

	database.DB.Save(&user)

	return c.JSON(user)
}

func GetMyProgress(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	stats, err := services.CalculateStats(database.DB, &user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to calculate stats"})
	}

	return c.JSON(fiber.Map{
		"points": user.Points,
		"level":  services.LevelForPoints(user.Points),
		"rank":   services.RankForPoints(user.Points),
		"stats":  stats,
	})
}
