package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/dialdesk/dialdesk/internal/api"
)

func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Campaign.List()
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to list campaigns")
		return
	}

	render.JSON(w, r, result)
}

func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCampaignRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	campaign, err := h.service.Campaign.Create(req)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to create campaign")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.CampaignResponse{Data: campaign})
}

func (h *Handler) UpdateCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req api.UpdateCampaignStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Campaign.UpdateStatus(id, req.Status); err != nil {
		h.handleServiceError(w, r, err, "Failed to update campaign status")
		return
	}

	render.JSON(w, r, map[string]string{"status": req.Status})
}

// ExecuteCampaign triggers an immediate send to the campaign's audience.
func (h *Handler) ExecuteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.service.Campaign.Execute(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to execute campaign")
		return
	}

	render.JSON(w, r, report)
}
