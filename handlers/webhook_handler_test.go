package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
	"github.com/rlumactod/boarding_house/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postWebhook(t *testing.T, app *fiber.App, body []byte, signature string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/webhooks/gcash", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Signature", signature)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func completedEvent(reference string) []byte {
	return []byte(`{
		"event": "payment.completed",
		"data": {
			"id": "txn_hook_1",
			"status": "completed",
			"referenceNumber": "` + reference + `",
			"amount": 500000,
			"currency": "PHP",
			"completedAt": "2026-09-01T10:30:00Z"
		}
	}`)
}

func TestWebhookMissingSignature(t *testing.T) {
	app := setupApp(t)

	resp := postWebhook(t, app, completedEvent("ORD-20260901-AAAA1111"), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhookInvalidSignature(t *testing.T) {
	app := setupApp(t)

	resp := postWebhook(t, app, completedEvent("ORD-20260901-AAAA1111"), "not-a-real-signature")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookUnknownReferenceIsAcknowledged(t *testing.T) {
	app := setupApp(t)
	tenant := createTestTenant(t)
	payment := createTestPayment(t, tenant, nil)

	body := completedEvent("ORD-20260901-UNKNOWN1")
	resp := postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// No state change anywhere.
	var unchanged models.Payment
	require.NoError(t, database.DB.First(&unchanged, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, unchanged.Status)
	assert.Nil(t, unchanged.TransactionID)
}

func TestWebhookCompletedMarksPaymentPaid(t *testing.T) {
	app := setupApp(t)
	tenant := createTestTenant(t)
	ref := "ORD-20260901-BBBB2222"
	payment := createTestPayment(t, tenant, func(p *models.Payment) {
		p.ReferenceNumber = &ref
	})

	body := completedEvent(ref)
	resp := postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Payment
	require.NoError(t, database.DB.First(&updated, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, updated.Status)
	require.NotNil(t, updated.TransactionID)
	assert.Equal(t, "txn_hook_1", *updated.TransactionID)
	require.NotNil(t, updated.PaymentMethod)
	assert.Equal(t, "gcash", *updated.PaymentMethod)
	require.NotNil(t, updated.PaidDate)
	assert.Equal(t, "2026-09-01", *updated.PaidDate)
	require.NotNil(t, updated.GcashAmount)
	assert.Equal(t, float64(5000), *updated.GcashAmount)
	assert.True(t, updated.WebhookReceived)
	require.NotNil(t, updated.WebhookReceivedAt)
}

func TestWebhookCompletedIsIdempotent(t *testing.T) {
	app := setupApp(t)
	tenant := createTestTenant(t)
	ref := "ORD-20260901-CCCC3333"
	createTestPayment(t, tenant, func(p *models.Payment) {
		p.ReferenceNumber = &ref
	})

	body := completedEvent(ref)
	resp := postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A duplicate delivery re-applies the same transition without error.
	resp = postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Payment
	require.NoError(t, database.DB.First(&updated, "reference_number = ?", ref).Error)
	assert.Equal(t, models.PaymentStatusPaid, updated.Status)
}

func TestWebhookCompletedSkippedAfterRefund(t *testing.T) {
	app := setupApp(t)
	tenant := createTestTenant(t)
	ref := "ORD-20260901-DDDD4444"
	payment := createTestPayment(t, tenant, func(p *models.Payment) {
		p.ReferenceNumber = &ref
		p.Status = models.PaymentStatusRefunded
	})

	body := completedEvent(ref)
	resp := postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var unchanged models.Payment
	require.NoError(t, database.DB.First(&unchanged, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusRefunded, unchanged.Status)
}

func TestWebhookFailed(t *testing.T) {
	app := setupApp(t)
	tenant := createTestTenant(t)
	ref := "ORD-20260901-EEEE5555"
	payment := createTestPayment(t, tenant, func(p *models.Payment) {
		p.ReferenceNumber = &ref
	})

	body := []byte(`{
		"event": "payment.failed",
		"data": {
			"id": "txn_hook_2",
			"referenceNumber": "` + ref + `",
			"failureReason": "Insufficient balance"
		}
	}`)
	resp := postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Payment
	require.NoError(t, database.DB.First(&updated, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, updated.Status)
	require.NotNil(t, updated.FailureReason)
	assert.Equal(t, "Insufficient balance", *updated.FailureReason)
	require.NotNil(t, updated.TransactionID)
	assert.Equal(t, "txn_hook_2", *updated.TransactionID)
}

func TestWebhookCancelled(t *testing.T) {
	app := setupApp(t)
	tenant := createTestTenant(t)
	ref := "ORD-20260901-FFFF6666"
	payment := createTestPayment(t, tenant, func(p *models.Payment) {
		p.ReferenceNumber = &ref
	})

	body := []byte(`{
		"event": "payment.cancelled",
		"data": {"id": "txn_hook_3", "referenceNumber": "` + ref + `"}
	}`)
	resp := postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Payment
	require.NoError(t, database.DB.First(&updated, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusCancelled, updated.Status)
	assert.True(t, updated.WebhookReceived)
}

func TestWebhookMalformedBodyStillAcknowledged(t *testing.T) {
	app := setupApp(t)

	body := []byte(`{"event": "payment.completed", "data": `)
	resp := postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhookUnknownEventIgnored(t *testing.T) {
	app := setupApp(t)
	tenant := createTestTenant(t)
	ref := "ORD-20260901-GGGG7777"
	payment := createTestPayment(t, tenant, func(p *models.Payment) {
		p.ReferenceNumber = &ref
	})

	body := []byte(`{
		"event": "payment.expired",
		"data": {"id": "txn_hook_4", "referenceNumber": "` + ref + `"}
	}`)
	resp := postWebhook(t, app, body, payments.Signature(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var unchanged models.Payment
	require.NoError(t, database.DB.First(&unchanged, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, unchanged.Status)
}
