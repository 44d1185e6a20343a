package api

import (
	"errors"
	"net/http"

	"github.com/openxroad/adminapi/model"
)

type errorResponse struct {
	Message string `json:"message"`
}

// statusForError maps the domain error taxonomy to HTTP statuses. Unmapped
// errors are internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrIdentifierNotFound):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrClientNotFound),
		errors.Is(err, model.ErrServiceNotFound),
		errors.Is(err, model.ErrEndpointNotFound),
		errors.Is(err, model.ErrLocalGroupNotFound),
		errors.Is(err, model.ErrAccessRightNotFound),
		errors.Is(err, model.ErrLocalGroupMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrAlreadyExists),
		errors.Is(err, model.ErrDuplicateAccessRight),
		errors.Is(err, model.ErrDuplicateLocalGroup),
		errors.Is(err, model.ErrDuplicateLocalGroupMember):
		return http.StatusConflict
	case errors.Is(err, model.ErrDirectoryUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		h.writeJSON(w, status, errorResponse{Message: "internal error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Message: err.Error()})
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Message: message})
}
