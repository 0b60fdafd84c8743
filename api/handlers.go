package api

import (
	"time"

	"github.com/farhanrmdhni/portfolio-backend/auth"
	"github.com/farhanrmdhni/portfolio-backend/database"
	"github.com/farhanrmdhni/portfolio-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, storageClient *storage.Client, authService *auth.Service, c map[string]string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(db.ProjectRepo(), storageClient),
		skillHandler:   newSkillHandler(db.SkillRepo()),
		profileHandler: newProfileHandler(db.ProfileRepo(), storageClient),
		authHandler:    newAuthHandler(authService),
		contactHandler: newContactHandler(db.ProfileRepo(), c),
		statusHandler:  newStatusHandler(db, storageClient, startupTime),
	}
}
