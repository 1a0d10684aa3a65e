package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type Developer struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

var developers = []Developer{
	{ID: 1, Name: "S.Imam Basha", Role: "Coordinator", Description: "Leads project vision & integration.", Photo: "hameed.jpg"},
	{ID: 2, Name: "S.Abdul Hameed", Role: "Backend Developer", Description: "Handles database & APIs.", Photo: "member2.jpg"},
	{ID: 3, Name: "Sagabala Goutham", Role: "Frontend Developer", Description: "Designs UI/UX with neon theme.", Photo: "member3.jpg"},
	{ID: 4, Name: "M.Yashwanth Kumar", Role: "Tester", Description: "Ensures everything works smoothly.", Photo: "member4.jpg"},
}

func GetDevelopers(c *fiber.Ctx) error {
	return c.JSON(developers)
}
