package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/projectboard/projectboard-go/internal/middleware"
	"github.com/projectboard/projectboard-go/internal/model"
	"github.com/projectboard/projectboard-go/internal/service"
)

// ProjectHandler handles HTTP requests for the project resource.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// HandleList handles GET /api/projects requests.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// HandleCreate handles POST /api/projects requests. The authenticated user
// becomes the project owner.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	creds, ok := middleware.CredentialsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.ProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), creds, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/projects/{projectId} requests.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /api/projects/{projectId} requests.
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	creds, ok := middleware.CredentialsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	var req model.UpdateProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), creds, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrProjectForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/projects/{projectId} requests.
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	creds, ok := middleware.CredentialsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), creds, id); err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrProjectForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func projectIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectId"), 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid project id"))
		return 0, false
	}
	return id, true
}
