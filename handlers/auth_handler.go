package handlers

import (
	"errors"
	"time"

	config "github.com/abdulhameed-s/leveling_tracker/configs"
	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/abdulhameed-s/leveling_tracker/notifications"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

const defaultQuote = "Stay focused. Keep leveling up."

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Quote    *string `json:"quote,omitempty" validate:"omitempty,max=300"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Quote     string    `json:"quote"`
	Rank      string    `json:"rank"`
	Level     int       `json:"level"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// currentUserID extracts the authenticated user's id from the JWT set by
// middleware.Protected().
func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	quote := defaultQuote
	if req.Quote != nil && *req.Quote != "" {
		quote = *req.Quote
	}

	newUser := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Quote:    quote,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	if newUser.Email != nil {
		go notifications.SendEmail(newUser.Username, *newUser.Email, "Welcome, Hunter!",
			"<h1>Welcome!</h1><p>Your leveling journey starts now. Complete quests, earn XP, climb the ranks.</p>")
	}

	response := UserResponse{
		ID:        newUser.ID.String(),
		Username:  newUser.Username,
		Quote:     newUser.Quote,
		Rank:      newUser.Rank,
		Level:     newUser.Level,
		Points:    newUser.Points,
		CreatedAt: newUser.CreatedAt,
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	result := database.DB.Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": t})
}
