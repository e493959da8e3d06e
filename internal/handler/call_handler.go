package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/dialdesk/dialdesk/internal/api"
)

func (h *Handler) ListCallLogs(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Call.List()
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to list call logs")
		return
	}

	render.JSON(w, r, result)
}

func (h *Handler) CreateCallLog(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCallLogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	log, err := h.service.Call.Create(req)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to create call log")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.CallLogResponse{Data: log})
}
