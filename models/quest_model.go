package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quest cadences. A quest's cadence never changes after creation.
const (
	CadenceDaily   = "daily"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
)

func ValidCadence(cadence string) bool {
	switch cadence {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
		return true
	}
	return false
}

type Quest struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Category   string    `gorm:"size:50;not null" json:"category"`
	Cadence    string    `gorm:"size:50;not null;index" json:"cadence"`
	Difficulty string    `gorm:"size:50;not null" json:"difficulty"`
	XP         int       `gorm:"default:10" json:"xp"`

	// Completed only ever transitions false -> true.
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func (q *Quest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
