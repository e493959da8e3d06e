package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/middleware"
	"github.com/dialdesk/dialdesk/internal/service"
)

const signatureHeader = "X-Twilio-Signature"

const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// webhookURL reconstructs the public URL the provider signed. Behind a
// proxy the original scheme arrives in X-Forwarded-Proto.
func webhookURL(r *http.Request) string {
	scheme := "https"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// formParams flattens the POST form the way the provider signs it.
func formParams(r *http.Request) map[string]string {
	params := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// InboundSMS receives provider-originated messages. Once the signature
// checks out the provider gets a 200 no matter what happens downstream;
// returning an error would make it retry a message we already saw.
func (h *Handler) InboundSMS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeBadRequest, "Invalid form body")
		return
	}

	if !h.gateway.VerifySignature(webhookURL(r), formParams(r), r.Header.Get(signatureHeader)) {
		h.sendError(w, r, http.StatusForbidden, errorCodeForbidden, "Invalid webhook signature")
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" || body == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "Missing From or Body")
		return
	}

	err := h.service.Message.IngestInbound(service.InboundMessage{
		From:       from,
		Body:       body,
		MessageSID: r.PostFormValue("MessageSid"),
	})
	if err != nil {
		h.logger.Error("Failed to ingest inbound message",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(emptyTwiML))
}

// DeliveryStatusCallback receives delivery receipts for outbound messages.
func (h *Handler) DeliveryStatusCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeBadRequest, "Invalid form body")
		return
	}

	if !h.gateway.VerifySignature(webhookURL(r), formParams(r), r.Header.Get(signatureHeader)) {
		h.sendError(w, r, http.StatusForbidden, errorCodeForbidden, "Invalid webhook signature")
		return
	}

	sid := r.PostFormValue("MessageSid")
	status := r.PostFormValue("MessageStatus")
	if sid == "" || status == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "Missing MessageSid or MessageStatus")
		return
	}

	err := h.service.Message.ApplyDeliveryStatus(service.DeliveryStatus{
		MessageSID:   sid,
		Status:       status,
		ErrorCode:    r.PostFormValue("ErrorCode"),
		ErrorMessage: r.PostFormValue("ErrorMessage"),
	})
	if err != nil {
		h.logger.Error("Failed to apply delivery status",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("sid", sid),
			zap.Error(err))
	}

	w.WriteHeader(http.StatusOK)
}
