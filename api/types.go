package api

import (
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rpupo63/gaffer-portfolio-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	publicHandler  publicHandler
	adminHandler   adminHandler
	projectHandler projectHandler
	clientHandler  clientHandler
	messageHandler messageHandler
	uploadHandler  uploadHandler
}

// MutationResponse acknowledges a write.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	Database        bool   `json:"database"`
	EmailConfigured bool   `json:"email_configured"`
	Cloudinary      bool   `json:"cloudinary"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
}

type ContactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	EmailSent bool   `json:"email_sent"`
}

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   int64                `json:"expires_at"`
	User        models.AdminResponse `json:"user"`
}

type MessagePage struct {
	Messages []models.ContactMessage `json:"messages"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	Pages    int64                   `json:"pages"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type MultiUploadResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	Results      []services.FileResult `json:"results"`
	SuccessCount int                   `json:"success_count"`
}
