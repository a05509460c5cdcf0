package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/database"
	"github.com/rpupo63/gaffer-portfolio-backend/errs"
	"github.com/rpupo63/gaffer-portfolio-backend/metrics"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rpupo63/gaffer-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminHandler struct {
	responder     Responder
	logger        zerolog.Logger
	adminRepo     *database.AdminRepo
	portfolioRepo *database.PortfolioRepo
	credentials   *services.Credentials
}

func newAdminHandler(adminRepo *database.AdminRepo, portfolioRepo *database.PortfolioRepo, credentials *services.Credentials) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		adminRepo:     adminRepo,
		portfolioRepo: portfolioRepo,
		credentials:   credentials,
	}
}

func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.AdminLogin
		if err := decodeJSON(r, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		admin, err := h.adminRepo.FindByUsername(r.Context(), body.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "admin", err))
			return
		}
		if admin == nil || !h.credentials.VerifyPassword(body.Password, admin.PasswordHash) {
			metrics.RecordLogin(false)
			h.logger.Warn().Str("username", body.Username).Msg("failed login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		now := time.Now()
		if err := h.adminRepo.TouchLastLogin(r.Context(), admin.ID, now); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "admin", err))
			return
		}
		admin.LastLogin = &now

		token, expiresAt, err := h.credentials.IssueToken(admin.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("could not issue token", err))
			return
		}

		metrics.RecordLogin(true)
		h.logger.Info().Str("username", admin.Username).Msg("admin logged in")
		h.responder.WriteJSON(w, LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresAt:   expiresAt.Unix(),
			User:        admin.Response(),
		})
	}
}

func (h adminHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := ctxGetAdmin(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("admin missing from request", err))
			return
		}
		h.responder.WriteJSON(w, admin.Response())
	}
}

// getPortfolio returns the stored document without creating a default.
func (h adminHandler) getPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolio, err := h.portfolioRepo.FindFirst(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
			return
		}
		if portfolio == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("portfolio not found"))
			return
		}
		h.responder.WriteJSON(w, portfolio)
	}
}

func (h adminHandler) updatePortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.PortfolioPatch
		if err := decodeJSON(r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		affected, err := h.portfolioRepo.Apply(r.Context(), patch, time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "portfolio", err))
			return
		}
		if affected == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("could not update portfolio"))
			return
		}

		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "Portfolio updated successfully"})
	}
}
