package api

import (
	"net/http"

	"github.com/rpupo63/gaffer-portfolio-backend/database"
	"github.com/rpupo63/gaffer-portfolio-backend/metrics"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rpupo63/gaffer-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	featuredWorksLimit  = 10
	recentProjectsLimit = 10
	publicClientsLimit  = 20
)

type publicHandler struct {
	responder     Responder
	logger        zerolog.Logger
	portfolioRepo *database.PortfolioRepo
	projectRepo   *database.ProjectRepo
	clientRepo    *database.ClientRepo
	messageRepo   *database.MessageRepo
	notifier      *services.Notifier
}

func newPublicHandler(db database.Database, notifier *services.Notifier) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()

	return publicHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		portfolioRepo: db.PortfolioRepo(),
		projectRepo:   db.ProjectRepo(),
		clientRepo:    db.ClientRepo(),
		messageRepo:   db.MessageRepo(),
		notifier:      notifier,
	}
}

// getPortfolio returns the public page aggregate, creating the default
// profile on first read. Featured and non-featured projects are listed apart.
func (h publicHandler) getPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		portfolio, err := h.portfolioRepo.EnsureDefault(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", "portfolio", err))
			return
		}

		var featured, recent []models.Project
		var clients []models.Client
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			featured, err = h.projectRepo.FindByFeatured(gctx, true, featuredWorksLimit)
			return err
		})
		g.Go(func() error {
			var err error
			recent, err = h.projectRepo.FindByFeatured(gctx, false, recentProjectsLimit)
			return err
		})
		g.Go(func() error {
			var err error
			clients, err = h.clientRepo.FindActive(gctx, publicClientsLimit)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", "portfolio", err))
			return
		}

		h.responder.WriteJSON(w, models.PublicPortfolio{
			Personal:       portfolio.Personal.Data(),
			DemoReel:       portfolio.DemoReel.Data(),
			Services:       nonNil([]models.Service(portfolio.Services)),
			FeaturedWorks:  publicProjects(featured),
			RecentProjects: publicProjects(recent),
			Clients:        publicClients(clients),
		})
	}
}

// submitContact stores a visitor message, emails the owner and queues the
// admin notification. Email failures do not fail the request.
func (h publicHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.ContactMessageCreate
		if err := decodeJSON(r, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg := body.NewMessage()
		if err := h.messageRepo.Add(r.Context(), &msg); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "message", err))
			return
		}
		metrics.RecordContact()

		delivery := h.notifier.SendContactEmail(r.Context(), msg)
		h.notifier.NotifyAdminAsync(msg)

		h.logger.Info().Str("email", msg.Email).Bool("emailSent", delivery.Sent).Msg("contact message received")
		h.responder.WriteJSON(w, ContactResponse{
			Success:   true,
			Message:   "Message sent successfully! I will get back to you soon.",
			EmailSent: delivery.Sent,
		})
	}
}

func publicProjects(projects []models.Project) []models.PublicProject {
	out := make([]models.PublicProject, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Public())
	}
	return out
}

func publicClients(clients []models.Client) []models.PublicClient {
	out := make([]models.PublicClient, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.Public())
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
