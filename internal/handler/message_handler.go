package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/repository"
)

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseListParams(r)

	result, err := h.service.Message.List(repository.MessageFilter{
		Status:     r.URL.Query().Get("status"),
		CampaignID: r.URL.Query().Get("campaign_id"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to list messages")
		return
	}

	render.JSON(w, r, result)
}

func (h *Handler) SendMessages(w http.ResponseWriter, r *http.Request) {
	var req api.SendMessagesRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	report, err := h.service.Message.Send(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to send messages")
		return
	}

	render.JSON(w, r, report)
}

func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Message.Conversations(r.URL.Query().Get("search"))
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to list conversations")
		return
	}

	render.JSON(w, r, result)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	result, err := h.service.Message.Thread(contactID)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to load thread")
		return
	}

	render.JSON(w, r, result)
}
