package api

import (
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, mediaStore services.MediaStore, maxUploadBytes int64) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.CatalogRepo(), mediaStore, maxUploadBytes),
		uploadHandler:  newUploadHandler(mediaStore, maxUploadBytes),
	}
}
