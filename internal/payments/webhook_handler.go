package payments

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps webhook payloads; processor events are small.
const maxBodyBytes = 1 << 20

// WebhookHandler is the single inbound endpoint for processor events.
// Signature failures are rejected before anything touches the database;
// once the signature is valid, handler errors are logged and the event is
// acknowledged anyway so the processor does not retry a logically-handled
// event forever.
type WebhookHandler struct {
	secret     string
	reconciler *Reconciler
	logger     *slog.Logger
}

func NewWebhookHandler(secret string, reconciler *Reconciler, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{secret: secret, reconciler: reconciler, logger: logger}
}

// Configured reports whether the handler has a usable signing secret.
func (h *WebhookHandler) Configured() bool {
	return h.secret != ""
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// An empty secret would let anyone forge a valid signature; refuse to
	// serve rather than verify against it.
	if !h.Configured() {
		h.logger.ErrorContext(r.Context(), "webhook secret not configured, rejecting delivery")
		http.Error(w, "webhook endpoint not configured", http.StatusServiceUnavailable)
		return
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "reading body", http.StatusBadRequest)
		return
	}

	if err := VerifySignature(h.secret, body, r.Header.Get(SignatureHeader)); err != nil {
		h.logger.WarnContext(r.Context(), "rejecting webhook", "error", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		// Signed but malformed: acknowledge and log rather than invite a
		// redelivery that will fail identically.
		h.logger.ErrorContext(r.Context(), "decoding webhook payload", "error", err)
		h.acknowledge(w)
		return
	}

	if err := h.reconciler.Apply(r.Context(), event); err != nil {
		h.logger.ErrorContext(r.Context(), "applying webhook event",
			"event_id", event.ID, "event_type", event.Type, "error", err)
	}
	h.acknowledge(w)
}

func (h *WebhookHandler) acknowledge(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"received":true}`))
}
