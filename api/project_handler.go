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

const adminListLimit = 100

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects retrieves up to 100 projects, newest first
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context(), adminListLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(projects))
	}
}

// createProject stores a new project and returns its generated id
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.ProjectCreate
		if err := decodeJSON(r, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := body.NewProject(time.Now())
		if err := h.projectRepo.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapInsertError("project", err))
			return
		}

		h.logger.Info().Str("projectID", project.ID).Msg("project created")
		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "Project created successfully", ID: project.ID})
	}
}

// updateProject applies a partial update to a project
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")

		var patch models.ProjectPatch
		if err := decodeJSON(r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		matched, err := h.projectRepo.Update(r.Context(), projectID, patch, time.Now())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}
		if matched == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "Project updated successfully"})
	}
}

// deleteProject removes a project by id
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")

		deleted, err := h.projectRepo.Delete(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}
		if deleted == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.logger.Info().Str("projectID", projectID).Msg("project deleted")
		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "Project deleted successfully"})
	}
}
