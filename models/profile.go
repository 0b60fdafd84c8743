package models

import "github.com/google/uuid"

// Profile is the site owner's personal information. The table holds at
// most one row: it is created on the first admin save and updated in
// place afterwards.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Bio       string    `json:"bio" db:"bio" gorm:"type:text"`
	Email     string    `json:"email" db:"email" gorm:"type:text"`
	Phone     string    `json:"phone" db:"phone" gorm:"type:text"`
	Github    string    `json:"github" db:"github" gorm:"type:text"`
	Linkedin  string    `json:"linkedin" db:"linkedin" gorm:"type:text"`
	Instagram string    `json:"instagram" db:"instagram" gorm:"type:text"`
	Website   string    `json:"website" db:"website" gorm:"type:text"`
	PhotoURL  string    `json:"photo_url" db:"photo_url" gorm:"type:text"`
}
