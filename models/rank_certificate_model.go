package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RankCertificate records the PDF issued when a user first reaches a rank.
// At most one certificate exists per (user, rank).
type RankCertificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Rank           string    `gorm:"size:50;not null" json:"rank"`
	CertificateURL string    `gorm:"size:255;not null" json:"certificate_url"`
	IssuedAt       time.Time `json:"issued_at"`
}

func (r *RankCertificate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
