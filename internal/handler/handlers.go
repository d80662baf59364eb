package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"webhook-receiver/internal/model"
	"webhook-receiver/internal/service"

	"github.com/sirupsen/logrus"
)

type PayloadReceiver interface {
	Receive(ctx context.Context, body []byte) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger       *logrus.Logger
	service      PayloadReceiver
	mirror       HealthChecker
	maxBodyBytes int64
}

// NewHandler wires the HTTP layer. mirror may be nil when no mirror is
// configured; maxBodyBytes <= 0 disables the body limit.
func NewHandler(logger *logrus.Logger, svc PayloadReceiver, mirror HealthChecker, maxBodyBytes int64) *Handler {
	return &Handler{
		logger:       logger,
		service:      svc,
		mirror:       mirror,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *Handler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.ReceiveWebhook(w, r)
	default:
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse{Detail: model.DetailMethodNotAllowed})
	}
}

func (h *Handler) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.WithField("limit", tooLarge.Limit).Info("Webhook body too large")
			writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{Detail: model.DetailPayloadTooLarge})
			return
		}
		h.logger.WithError(err).Error("Failed to read webhook body")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Detail: model.DetailInternalError})
		return
	}

	if err := h.service.Receive(r.Context(), data); err != nil {
		if errors.Is(err, service.ErrMalformedPayload) {
			h.logger.WithError(err).Info("Invalid JSON in webhook request")
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Detail: model.DetailInvalidJSON})
			return
		}
		h.logger.WithError(err).Error("Failed to handle webhook")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Detail: model.DetailInternalError})
		return
	}

	writeJSON(w, http.StatusOK, model.Response{Status: model.StatusOK})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := model.HealthResponse{Status: model.StatusOK, Mirror: model.MirrorDisabled}

	if h.mirror != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.mirror.Ping(ctx); err != nil {
			h.logger.WithError(err).Warn("Mirror health check failed")
			resp.Status = model.StatusDegraded
			resp.Mirror = model.MirrorError
		} else {
			resp.Mirror = model.MirrorOK
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
