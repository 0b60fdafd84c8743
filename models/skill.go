package models

import (
	"time"

	"github.com/google/uuid"
)

// SkillIcon selects the display glyph for a skill. The set is closed:
// the frontend maps each value to a fixed icon component.
type SkillIcon string

const (
	IconCode     SkillIcon = "code"
	IconDatabase SkillIcon = "database"
	IconDesign   SkillIcon = "design"
	IconWeb      SkillIcon = "web"
)

// SkillIcons lists every valid icon value, in display order.
var SkillIcons = []SkillIcon{IconCode, IconDatabase, IconDesign, IconWeb}

// Valid reports whether the icon is one of the known glyphs.
func (i SkillIcon) Valid() bool {
	switch i {
	case IconCode, IconDatabase, IconDesign, IconWeb:
		return true
	}
	return false
}

// Skill represents a technology or tool shown in the skills marquee
type Skill struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Category  string    `json:"category" db:"category" gorm:"type:text;not null"`
	Level     int       `json:"level" db:"level" gorm:"type:integer;not null;default:50"`
	Icon      SkillIcon `json:"icon" db:"icon" gorm:"type:text;not null;default:'code'"`
	URL       *string   `json:"url,omitempty" db:"url" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
