package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio entry with its image gallery
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Detail       string                      `json:"detail" db:"detail" gorm:"type:text;not null"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" db:"technologies"`
	ImageURL     string                      `json:"image_url" db:"image_url" gorm:"type:text"`
	Images       datatypes.JSONSlice[string] `json:"images" db:"images"`
	IsFeatured   bool                        `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time                   `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// Thumbnail returns the display image for the project: the first gallery
// image when the gallery is non-empty, otherwise the stored image_url.
func (p Project) Thumbnail() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.ImageURL
}
