package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/farhanrmdhni/portfolio-backend/models"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// FindFirst returns the singleton profile row, or nil when none has been
// saved yet.
func (r *ProfileRepo) FindFirst() (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save creates the profile row on first save and updates it in place
// afterwards. The row is never deleted through normal flow.
func (r *ProfileRepo) Save(profile *models.Profile) error {
	existing, err := r.FindFirst()
	if err != nil {
		return err
	}
	if existing != nil {
		profile.ID = existing.ID
		return r.db.Save(profile).Error
	}
	return r.db.Create(profile).Error
}
