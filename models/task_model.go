package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	AlarmTime   *time.Time `json:"alarm_time"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
