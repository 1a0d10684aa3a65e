package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudyLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject   string    `gorm:"size:100;not null" json:"subject"`
	Duration  int       `gorm:"not null" json:"duration"` // minutes
	Notes     *string   `gorm:"type:text" json:"notes"`
	StartedAt string    `gorm:"size:50" json:"started_at"`
	EndedAt   string    `gorm:"size:50" json:"ended_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *StudyLog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
