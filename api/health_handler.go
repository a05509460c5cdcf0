package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rpupo63/gaffer-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	settings    config.Settings
	notifier    *services.Notifier
	startupTime time.Time
}

func newHealthHandler(settings config.Settings, notifier *services.Notifier, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		settings:    settings,
		notifier:    notifier,
		startupTime: startupTime,
	}
}

func (h healthHandler) root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, RootResponse{
			Message: "Gaffer Portfolio API - " + h.settings.EmailJS.OwnerName,
			Version: apiVersion,
			Status:  "online",
		})
	}
}

// health reports configuration state only; it never touches the store.
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status:          "healthy",
			Database:        h.settings.Database.URL != "",
			EmailConfigured: h.notifier.ValidateConfig().Configured,
			Cloudinary:      h.settings.Cloudinary.Configured(),
			UptimeSeconds:   int64(time.Since(h.startupTime).Seconds()),
		})
	}
}
