package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// WebhookProcessor reconciles a payment gateway callback. The bool result
// is the whole contract: true means the callback is accounted for,
// false means the gateway should not consider it delivered.
type WebhookProcessor interface {
	ProcessWebhook(ctx context.Context, orderID int64, status string) bool
}

type WebhookHandler struct {
	processor WebhookProcessor
	timeout   time.Duration
}

func NewWebhookHandler(processor WebhookProcessor, timeout time.Duration) *WebhookHandler {
	return &WebhookHandler{processor: processor, timeout: timeout}
}

type webhookRequest struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

type webhookResponse struct {
	OK bool `json:"ok"`
}

// POST /api/v1/payments/webhook
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, webhookResponse{OK: false})
		return
	}
	if req.OrderID <= 0 {
		respondJSON(w, http.StatusBadRequest, webhookResponse{OK: false})
		return
	}

	ok := h.processor.ProcessWebhook(ctx, req.OrderID, req.Status)
	respondJSON(w, http.StatusOK, webhookResponse{OK: ok})
}
