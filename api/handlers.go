package api

import (
	"github.com/rpupo63/gaffer-portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, svc Services, rt router) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(rt.settings, svc.Notifier, rt.startupTime),
		publicHandler:  newPublicHandler(database, svc.Notifier),
		adminHandler:   newAdminHandler(database.AdminRepo(), database.PortfolioRepo(), svc.Credentials),
		projectHandler: newProjectHandler(database.ProjectRepo()),
		clientHandler:  newClientHandler(database.ClientRepo()),
		messageHandler: newMessageHandler(database.MessageRepo()),
		uploadHandler:  newUploadHandler(svc.Uploader),
	}
}
