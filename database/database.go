package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo *ProjectRepo
	skillRepo   *SkillRepo
	profileRepo *ProfileRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo: NewProjectRepo(db),
		skillRepo:   NewSkillRepo(db),
		profileRepo: NewProfileRepo(db),
	}
}

// Ready reports whether a database connection is attached. A zero
// Database (unconfigured mode) is not ready and data routes answer 503.
func (d Database) Ready() bool {
	return d.projectRepo != nil
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}
