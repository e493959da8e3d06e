package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/csvimport"
	"github.com/dialdesk/dialdesk/internal/middleware"
	"github.com/dialdesk/dialdesk/internal/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	maxImportBytes   = 10 << 20
)

// parseListParams reads limit/offset query parameters with clamping.
func parseListParams(r *http.Request) (limit, offset int) {
	limit = defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= maxListLimit {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseListParams(r)

	result, err := h.service.Contact.List(repository.ContactFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to list contacts")
		return
	}

	render.JSON(w, r, result)
}

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req api.CreateContactRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.service.Contact.Create(req)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to create contact")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.ContactResponse{Data: contact})
}

func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req api.UpdateContactRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.service.Contact.Update(id, req)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to update contact")
		return
	}

	render.JSON(w, r, api.ContactResponse{Data: contact})
}

// ImportContacts accepts a multipart upload under the "file" field and
// bulk-imports its rows.
func (h *Handler) ImportContacts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	result, err := h.service.Contact.ImportCSV(file)
	if err != nil {
		if err == csvimport.ErrEmptyFile {
			h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "CSV file is empty")
			return
		}
		h.handleServiceError(w, r, err, "Failed to import contacts")
		return
	}

	h.logger.Info("CSV imported",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("filename", header.Filename),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	render.JSON(w, r, result)
}
