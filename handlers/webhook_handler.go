package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
	"github.com/rlumactod/boarding_house/notifications"
	"github.com/rlumactod/boarding_house/payments"
	"github.com/rlumactod/boarding_house/services"
	"github.com/rlumactod/boarding_house/websocket"
)

type gcashWebhookData struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	ReferenceNumber string `json:"referenceNumber"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	CompletedAt     string `json:"completedAt"`
	FailureReason   string `json:"failureReason"`
}

type gcashWebhookPayload struct {
	Event string           `json:"event"`
	Data  gcashWebhookData `json:"data"`
}

// HandleGcashWebhook verifies the provider signature over the raw body, then
// acknowledges with 200 no matter what happens inside dispatch. Processing
// errors are logged only; the provider must never be provoked into a retry
// storm over our own failures.
func HandleGcashWebhook(c *fiber.Ctx) error {
	signature := c.Get("X-Signature")
	if signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing signature"})
	}

	body := c.Body()
	if !payments.VerifyWebhookSignature(body, signature) {
		log.Println("⚠️ Invalid GCash webhook signature")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid signature"})
	}

	var payload gcashWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("Webhook error: cannot parse payload: %v", err)
		return c.JSON(fiber.Map{"error": "Webhook received but processing failed"})
	}

	log.Printf("[GCash Webhook] Event: %s, Reference: %s", payload.Event, payload.Data.ReferenceNumber)

	switch payload.Event {
	case "payment.completed":
		handlePaymentCompleted(payload.Data)
	case "payment.failed":
		handlePaymentFailed(payload.Data)
	case "payment.cancelled":
		handlePaymentCancelled(payload.Data)
	default:
		log.Printf("Ignoring unknown webhook event: %s", payload.Event)
	}

	return c.JSON(fiber.Map{"received": true})
}

func findPaymentByReference(reference string) (*models.Payment, bool) {
	var payment models.Payment
	if err := database.DB.First(&payment, "reference_number = ?", reference).Error; err != nil {
		log.Printf("⚠️ Payment not found for reference: %s", reference)
		return nil, false
	}
	return &payment, true
}

func handlePaymentCompleted(data gcashWebhookData) {
	payment, ok := findPaymentByReference(data.ReferenceNumber)
	if !ok {
		return
	}

	if !models.CanTransitionPayment(payment.Status, models.PaymentStatusPaid) {
		log.Printf("Skipping completed event for %s: illegal transition from %s", data.ReferenceNumber, payment.Status)
		return
	}

	paidDate := time.Now().Format("2006-01-02")
	if completedAt, err := time.Parse(time.RFC3339, data.CompletedAt); err == nil {
		paidDate = completedAt.Format("2006-01-02")
	}

	method := "gcash"
	gcashAmount := float64(data.Amount) / 100
	now := time.Now()

	payment.Status = models.PaymentStatusPaid
	payment.PaymentMethod = &method
	payment.PaidDate = &paidDate
	payment.TransactionID = &data.ID
	payment.GcashAmount = &gcashAmount
	payment.WebhookReceived = true
	payment.WebhookReceivedAt = &now

	if err := database.DB.Save(payment).Error; err != nil {
		log.Printf("🔥 Error handling payment completion for %s: %v", data.ReferenceNumber, err)
		return
	}

	log.Printf("✅ Payment marked as paid - Reference: %s, Transaction: %s", data.ReferenceNumber, data.ID)

	websocket.NotifyPaymentUpdate(payment)
	go services.GenerateReceipt(*payment)
	go sendPaymentConfirmationEmail(*payment)
}

func handlePaymentFailed(data gcashWebhookData) {
	payment, ok := findPaymentByReference(data.ReferenceNumber)
	if !ok {
		return
	}

	if !models.CanTransitionPayment(payment.Status, models.PaymentStatusFailed) {
		log.Printf("Skipping failed event for %s: illegal transition from %s", data.ReferenceNumber, payment.Status)
		return
	}

	reason := data.FailureReason
	if reason == "" {
		reason = "Unknown error"
	}
	now := time.Now()

	payment.Status = models.PaymentStatusFailed
	payment.TransactionID = &data.ID
	payment.FailureReason = &reason
	payment.WebhookReceived = true
	payment.WebhookReceivedAt = &now

	if err := database.DB.Save(payment).Error; err != nil {
		log.Printf("🔥 Error handling payment failure for %s: %v", data.ReferenceNumber, err)
		return
	}

	log.Printf("❌ Payment failed - Reference: %s, Reason: %s", data.ReferenceNumber, reason)

	websocket.NotifyPaymentUpdate(payment)
	go sendPaymentFailureEmail(*payment, reason)
}

func handlePaymentCancelled(data gcashWebhookData) {
	payment, ok := findPaymentByReference(data.ReferenceNumber)
	if !ok {
		return
	}

	if !models.CanTransitionPayment(payment.Status, models.PaymentStatusCancelled) {
		log.Printf("Skipping cancelled event for %s: illegal transition from %s", data.ReferenceNumber, payment.Status)
		return
	}

	now := time.Now()
	payment.Status = models.PaymentStatusCancelled
	payment.TransactionID = &data.ID
	payment.WebhookReceived = true
	payment.WebhookReceivedAt = &now

	if err := database.DB.Save(payment).Error; err != nil {
		log.Printf("🔥 Error handling payment cancellation for %s: %v", data.ReferenceNumber, err)
		return
	}

	log.Printf("⛔ Payment cancelled - Reference: %s", data.ReferenceNumber)

	websocket.NotifyPaymentUpdate(payment)
}

func sendPaymentConfirmationEmail(payment models.Payment) {
	var tenant models.Tenant
	if err := database.DB.First(&tenant, "id = ?", payment.TenantID).Error; err != nil {
		return
	}

	notifications.SendEmail(
		tenant.Name,
		tenant.Email,
		"Payment Received!",
		fmt.Sprintf("<h1>Payment Confirmed</h1><p>Hi %s,</p><p>Your GCash payment of PHP %.2f for %s has been received. Thank you!</p>", tenant.Name, payment.Amount, payment.Month),
	)
}

func sendPaymentFailureEmail(payment models.Payment, reason string) {
	var tenant models.Tenant
	if err := database.DB.First(&tenant, "id = ?", payment.TenantID).Error; err != nil {
		return
	}

	notifications.SendEmail(
		tenant.Name,
		tenant.Email,
		"Payment Failed",
		fmt.Sprintf("<h1>Payment Failed</h1><p>Hi %s,</p><p>Your GCash payment for %s could not be completed: %s. Please try again.</p>", tenant.Name, payment.Month, reason),
	)
}
