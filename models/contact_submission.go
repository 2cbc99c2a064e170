package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactSubmission is a message left through the public contact form.
// Only the read flag changes after creation.
type ContactSubmission struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:varchar(36);primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email       string    `json:"email" db:"email" gorm:"type:varchar(320);not null;index:idx_contact_email"`
	Phone       string    `json:"phone" db:"phone" gorm:"type:varchar(64);not null"`
	Service     string    `json:"service" db:"service" gorm:"type:varchar(100);not null"`
	Message     string    `json:"message" db:"message" gorm:"type:text;not null"`
	IsRead      bool      `json:"is_read" db:"is_read" gorm:"not null;default:false"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at" gorm:"not null;index:idx_contact_submitted_at"`
}

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = time.Now().UTC()
	}
	return nil
}
