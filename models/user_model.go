package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"size:100;not null;unique" json:"username"`
	Email    *string   `gorm:"size:255;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Quote    string    `gorm:"size:300;not null;default:'Stay focused. Keep leveling up.'" json:"quote"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`

	// Points are the single source of truth; Level and Rank are recomputed
	// from Points whenever they change.
	Points int    `gorm:"default:0" json:"points"`
	Level  int    `gorm:"default:1" json:"level"`
	Rank   string `gorm:"size:50;default:'E'" json:"rank"`

	Strength int `gorm:"default:50" json:"strength"`
	Health   int `gorm:"default:50" json:"health"`
	Growth   int `gorm:"default:50" json:"growth"`
	Wisdom   int `gorm:"default:50" json:"wisdom"`
	Finance  int `gorm:"default:50" json:"finance"`

	Age          *int     `json:"age"`
	HeightCm     *float64 `json:"height_cm"`
	WeightKg     *float64 `json:"weight_kg"`
	FitnessLevel string   `gorm:"size:50;default:'Beginner'" json:"fitness_level"`

	// Nil means the cadence has never been generated and is due immediately.
	LastDailyQuest   *time.Time `json:"last_daily_quest"`
	LastWeeklyQuest  *time.Time `json:"last_weekly_quest"`
	LastMonthlyQuest *time.Time `json:"last_monthly_quest"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
