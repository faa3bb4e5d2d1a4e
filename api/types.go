package api

import "github.com/rpupo63/artist-portfolio-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	uploadHandler  uploadHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error  string `json:"error" example:"Missing required field: title"`
	Status string `json:"status" example:"error"`
	Field  string `json:"field,omitempty" example:"title"`
}

// ProjectsBySlugResponse is the answer to a slug lookup; Projects holds at
// most one entry.
type ProjectsBySlugResponse struct {
	Projects []*models.Project `json:"projects"`
}

type CreateProjectResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Slug    string `json:"slug"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type DeleteProjectResponse struct {
	Success     bool              `json:"success"`
	DeletedFrom []models.Language `json:"deletedFrom"`
}

type UploadResponse struct {
	Success      bool   `json:"success"`
	FilePath     string `json:"filePath"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
}
