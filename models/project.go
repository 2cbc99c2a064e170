package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a portfolio entry shown on the public site
type Project struct {
	ID             uuid.UUID                   `json:"id" db:"id" gorm:"type:varchar(36);primaryKey;not null"`
	Title          string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description    string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Client         string                      `json:"client" db:"client" gorm:"type:text;not null"`
	Category       string                      `json:"category" db:"category" gorm:"type:varchar(100);not null;index:idx_project_category"`
	Tags           datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	Images         datatypes.JSONSlice[string] `json:"images" db:"images"`
	FeaturedImage  *string                     `json:"featured_image" db:"featured_image" gorm:"type:text"`
	CompletionDate time.Time                   `json:"completion_date" db:"completion_date" gorm:"not null;index:idx_project_completion_date"`
	IsFeatured     bool                        `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	CreatedAt      time.Time                   `json:"created_at" db:"created_at" gorm:"not null;index:idx_project_created_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}
