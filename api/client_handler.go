package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/gaffer-portfolio-backend/database"
	"github.com/rpupo63/gaffer-portfolio-backend/errs"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type clientHandler struct {
	responder  Responder
	logger     zerolog.Logger
	clientRepo *database.ClientRepo
}

func newClientHandler(clientRepo *database.ClientRepo) clientHandler {
	logger := log.With().Str("handlerName", "clientHandler").Logger()

	return clientHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		clientRepo: clientRepo,
	}
}

func (h clientHandler) getAllClients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := h.clientRepo.FindAll(r.Context(), adminListLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "clients", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(clients))
	}
}

func (h clientHandler) createClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.ClientCreate
		if err := decodeJSON(r, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		client := body.NewClient()
		if err := h.clientRepo.Add(r.Context(), &client); err != nil {
			h.responder.WriteError(w, wrapInsertError("client", err))
			return
		}

		h.logger.Info().Str("clientID", client.ID).Msg("client created")
		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "Client created successfully", ID: client.ID})
	}
}

func (h clientHandler) updateClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "clientID")

		var patch models.ClientPatch
		if err := decodeJSON(r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		matched, err := h.clientRepo.Update(r.Context(), clientID, patch, time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "client", err))
			return
		}
		if matched == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
			return
		}

		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "Client updated successfully"})
	}
}

func (h clientHandler) deleteClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "clientID")

		deleted, err := h.clientRepo.Delete(r.Context(), clientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "client", err))
			return
		}
		if deleted == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("client not found"))
			return
		}

		h.logger.Info().Str("clientID", clientID).Msg("client deleted")
		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "Client deleted successfully"})
	}
}
