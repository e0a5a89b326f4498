package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/testutil"
)

const testSecret = "whsec_test"

func postWebhook(t *testing.T, handler http.Handler, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestWebhookHandler_AppliesSignedEvent(t *testing.T) {
	database := testutil.NewTestDB(t)
	handler := NewWebhookHandler(testSecret, NewReconciler(testutil.NewTestUoW(database), nil), nil)
	inv := seedInvoice(t, database, "pi_123")

	body, err := json.Marshal(Event{
		ID: "evt_1", Type: EventPaymentSucceeded,
		Data: EventData{ProcessorRef: "pi_123"},
	})
	require.NoError(t, err)

	rr := postWebhook(t, handler, body, Sign(testSecret, body))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"received":true}`, rr.Body.String())
	assert.Equal(t, domain.InvoicePaid, invoiceStatus(t, database, inv.ID))
}

func TestWebhookHandler_RejectsBadSignature(t *testing.T) {
	database := testutil.NewTestDB(t)
	handler := NewWebhookHandler(testSecret, NewReconciler(testutil.NewTestUoW(database), nil), nil)
	inv := seedInvoice(t, database, "pi_123")

	body, err := json.Marshal(Event{
		ID: "evt_1", Type: EventPaymentSucceeded,
		Data: EventData{ProcessorRef: "pi_123"},
	})
	require.NoError(t, err)

	for _, sig := range []string{"", "deadbeef", Sign("wrong_secret", body)} {
		rr := postWebhook(t, handler, body, sig)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	}
	assert.Equal(t, domain.InvoicePending, invoiceStatus(t, database, inv.ID))
}

func TestWebhookHandler_SignatureBindsRawBytes(t *testing.T) {
	database := testutil.NewTestDB(t)
	handler := NewWebhookHandler(testSecret, NewReconciler(testutil.NewTestUoW(database), nil), nil)
	seedInvoice(t, database, "pi_123")

	// Semantically identical JSON with different whitespace must fail
	// under a signature computed over the original bytes.
	original := []byte(`{"id":"evt_1","type":"payment.succeeded","data":{"processor_ref":"pi_123"}}`)
	reserialized := []byte(`{"id": "evt_1", "type": "payment.succeeded", "data": {"processor_ref": "pi_123"}}`)

	rr := postWebhook(t, handler, reserialized, Sign(testSecret, original))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postWebhook(t, handler, original, Sign(testSecret, original))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWebhookHandler_AcknowledgesHandlerFailures(t *testing.T) {
	database := testutil.NewTestDB(t)
	handler := NewWebhookHandler(testSecret, NewReconciler(testutil.NewTestUoW(database), nil), nil)

	// No matching invoice: logged and swallowed, still a 200.
	body := []byte(`{"id":"evt_1","type":"payment.succeeded","data":{"processor_ref":"pi_unknown"}}`)
	rr := postWebhook(t, handler, body, Sign(testSecret, body))
	assert.Equal(t, http.StatusOK, rr.Code)

	// Signed but malformed payload: same treatment.
	garbage := []byte(`{"id":`)
	rr = postWebhook(t, handler, garbage, Sign(testSecret, garbage))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWebhookHandler_RefusesWithoutSecret(t *testing.T) {
	database := testutil.NewTestDB(t)
	handler := NewWebhookHandler("", NewReconciler(testutil.NewTestUoW(database), nil), nil)
	inv := seedInvoice(t, database, "pi_123")

	assert.False(t, handler.Configured())

	body, err := json.Marshal(Event{
		ID: "evt_1", Type: EventPaymentSucceeded,
		Data: EventData{ProcessorRef: "pi_123"},
	})
	require.NoError(t, err)

	// An empty key would verify any attacker-signed payload: the handler
	// must refuse the delivery outright instead.
	rr := postWebhook(t, handler, body, Sign("", body))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, domain.InvoicePending, invoiceStatus(t, database, inv.ID))
}

func TestWebhookHandler_MethodNotAllowed(t *testing.T) {
	database := testutil.NewTestDB(t)
	handler := NewWebhookHandler(testSecret, NewReconciler(testutil.NewTestUoW(database), nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/webhooks/payments", nil).WithContext(context.Background())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
