package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/gaffer-portfolio-backend/database"
	"github.com/rpupo63/gaffer-portfolio-backend/errs"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultMessagePage  = 1
	defaultMessageLimit = 20
	maxMessageLimit     = 100
)

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
}

func newMessageHandler(messageRepo *database.MessageRepo) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
	}
}

// getMessages lists contact messages newest first, one page at a time
func (h messageHandler) getMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		page, err := intParam(query.Get("page"), "page", defaultMessagePage, 1, 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		limit, err := intParam(query.Get("limit"), "limit", defaultMessageLimit, 1, maxMessageLimit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var filter models.MessageFilter
		if raw := query.Get("read"); raw != "" {
			read, err := strconv.ParseBool(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewValidationError("read", "value could not be parsed to a boolean"))
				return
			}
			filter.Read = &read
		}

		messages, total, err := h.messageRepo.FindPage(r.Context(), filter, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "messages", err))
			return
		}

		h.responder.WriteJSON(w, MessagePage{
			Messages: messages,
			Total:    total,
			Page:     page,
			Pages:    (total + int64(limit) - 1) / int64(limit),
		})
	}
}

// updateMessage sets the read and replied flags. Repeating a patch succeeds.
func (h messageHandler) updateMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID := chi.URLParam(r, "messageID")

		var patch models.MessagePatch
		if err := decodeJSON(r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		matched, err := h.messageRepo.Update(r.Context(), messageID, patch)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "message", err))
			return
		}
		if matched == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("message not found"))
			return
		}

		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "Message updated successfully"})
	}
}

// intParam parses an optional integer query parameter. A max of 0 means no
// upper bound.
func intParam(raw, name string, def, min, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(name, "value is not a valid integer")
	}
	if v < min {
		return 0, errs.NewValidationError(name, "ensure this value is greater than or equal to "+strconv.Itoa(min))
	}
	if max > 0 && v > max {
		return 0, errs.NewValidationError(name, "ensure this value is less than or equal to "+strconv.Itoa(max))
	}
	return v, nil
}
