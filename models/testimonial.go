package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Testimonial is a client quote, optionally featured on the home page
type Testimonial struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:varchar(36);primaryKey;not null"`
	Name       string    `json:"name" db:"name" gorm:"type:text;not null"`
	Role       string    `json:"role" db:"role" gorm:"type:text;not null"`
	Company    *string   `json:"company" db:"company" gorm:"type:text"`
	Content    string    `json:"content" db:"content" gorm:"type:text;not null"`
	Rating     int       `json:"rating" db:"rating" gorm:"not null;check:chk_testimonial_rating,rating >= 1 AND rating <= 5"`
	Image      *string   `json:"image" db:"image" gorm:"type:text"`
	IsFeatured bool      `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	Likes      int64     `json:"likes" db:"likes" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" gorm:"not null;index:idx_testimonial_created_at"`
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ValidRating reports whether r falls inside the accepted star range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
