// Package handler provides HTTP request handlers for the dashboard API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/gateway"
	"github.com/dialdesk/dialdesk/internal/middleware"
	"github.com/dialdesk/dialdesk/internal/repository"
	"github.com/dialdesk/dialdesk/internal/service"
)

const (
	errorCodeValidation    = "VALIDATION_ERROR"
	errorCodeBadRequest    = "BAD_REQUEST"
	errorCodeNotFound      = "NOT_FOUND"
	errorCodeNotConfigured = "NOT_CONFIGURED"
	errorCodeForbidden     = "FORBIDDEN"
)

const errorMessageNotConfigured = "Service is not configured. Set database and SMS provider credentials."

type Handler struct {
	service  *service.Service
	gateway  gateway.Gateway
	logger   *zap.Logger
	validate *validator.Validate
}

func NewHandler(service *service.Service, gw gateway.Gateway, logger *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		gateway:  gw,
		logger:   logger,
		validate: validator.New(),
	}
}

// Routes mounts every API route on a fresh chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.ListContacts)
			r.Post("/", h.CreateContact)
			r.Post("/import", h.ImportContacts)
			r.Put("/{id}", h.UpdateContact)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", h.ListMessages)
			r.Post("/send", h.SendMessages)
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", h.ListConversations)
			r.Get("/{contactID}", h.GetThread)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.ListCampaigns)
			r.Post("/", h.CreateCampaign)
			r.Patch("/{id}/status", h.UpdateCampaignStatus)
			r.Post("/{id}/execute", h.ExecuteCampaign)
		})

		r.Route("/call-logs", func(r chi.Router) {
			r.Get("/", h.ListCallLogs)
			r.Post("/", h.CreateCallLog)
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/sms", h.InboundSMS)
			r.Post("/status", h.DeliveryStatusCallback)
		})

		r.Route("/scheduler", func(r chi.Router) {
			r.Post("/start", h.StartScheduler)
			r.Post("/stop", h.StopScheduler)
		})
	})

	return r
}

// decodeAndValidate unmarshals the JSON body into dst and runs struct
// validation. It writes the error response itself and reports success.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeBadRequest, "Invalid JSON body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service layer errors onto the error envelope.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		h.sendError(w, r, http.StatusNotImplemented, errorCodeNotConfigured, errorMessageNotConfigured)
	case errors.Is(err, repository.ErrNotFound):
		h.sendError(w, r, http.StatusNotFound, errorCodeNotFound, "Record not found")
	case errors.Is(err, service.ErrNoRecipients):
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "No valid recipients")
	default:
		h.logger.Error(fallback,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, fallback)
	}
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	now := time.Now()
	render.Status(r, statusCode)
	render.JSON(w, r, api.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		Timestamp: &now,
	})
}
