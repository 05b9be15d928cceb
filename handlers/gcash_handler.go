package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/rlumactod/boarding_house/configs"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
	"github.com/rlumactod/boarding_house/payments"
	"github.com/rlumactod/boarding_house/utils"
)

type InitiateGcashRequest struct {
	PaymentID string  `json:"paymentId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	TenantID  string  `json:"tenantId" validate:"required"`
	ReturnURL string  `json:"returnUrl"`
	CancelURL string  `json:"cancelUrl"`
}

func frontendURL() string {
	if url := config.Config("FRONTEND_URL"); url != "" {
		return url
	}
	return "http://localhost:5173"
}

// InitiateGcashPayment asks the provider for a hosted payment link. A fresh
// reference number is stamped onto the payment every time; re-initiating
// before the previous attempt resolves orphans the old reference.
func InitiateGcashPayment(c *fiber.Ctx) error {
	var req InitiateGcashRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", req.PaymentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var tenant models.Tenant
	if err := database.DB.First(&tenant, "id = ?", req.TenantID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tenant not found"})
	}

	referenceNumber, err := utils.GenerateUniqueReferenceNumber(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate reference number"})
	}

	now := time.Now()
	payment.ReferenceNumber = &referenceNumber
	payment.GcashInitiated = true
	payment.GcashInitiatedAt = &now
	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = frontendURL() + "/payment-success"
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = frontendURL() + "/payment-cancelled"
	}

	phone := ""
	if tenant.Phone != nil {
		phone = *tenant.Phone
	}

	result, err := payments.InitiatePayment(payments.InitiatePaymentDetails{
		ReferenceNumber: referenceNumber,
		Amount:          req.Amount,
		Currency:        "PHP",
		Description:     fmt.Sprintf("Boarding House Payment - %s", payment.Month),
		CustomerEmail:   tenant.Email,
		CustomerPhone:   phone,
		ReturnURL:       returnURL,
		CancelURL:       cancelURL,
	})
	if err != nil {
		log.Printf("GCash payment initiation failed for %s: %v", referenceNumber, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"transactionId":   result.TransactionID,
		"paymentLink":     result.PaymentLink,
		"qrCode":          result.QRCode,
		"referenceNumber": referenceNumber,
		"expiresAt":       result.ExpiresAt,
		"amount":          req.Amount,
		"tenantName":      tenant.Name,
	})
}

// GetGcashStatus reports a payment's status by reference number, preferring
// the provider's fresh view whenever a transaction id exists.
func GetGcashStatus(c *fiber.Ctx) error {
	referenceNumber := c.Params("referenceNumber")

	var payment models.Payment
	if err := database.DB.First(&payment, "reference_number = ?", referenceNumber).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	if payment.TransactionID != nil {
		status, err := payments.GetPaymentStatus(*payment.TransactionID)
		if err == nil {
			return c.JSON(fiber.Map{
				"success":         true,
				"status":          status.Status,
				"referenceNumber": referenceNumber,
				"amount":          payment.Amount,
				"tenantName":      payment.TenantName,
				"month":           payment.Month,
				"completedAt":     status.CompletedAt,
			})
		}
		log.Printf("GCash status check failed for %s: %v", referenceNumber, err)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"status":          payment.Status,
		"referenceNumber": referenceNumber,
		"amount":          payment.Amount,
		"tenantName":      payment.TenantName,
		"month":           payment.Month,
		"completedAt":     payment.PaidDate,
	})
}

// GcashReturn handles the browser redirect after the hosted payment page.
func GcashReturn(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing reference number"})
	}

	var payment models.Payment
	if err := database.DB.First(&payment, "reference_number = ?", reference).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	if payment.TransactionID != nil {
		status, err := payments.GetPaymentStatus(*payment.TransactionID)
		if err == nil {
			message := "Payment is being processed. Please wait for confirmation."
			if status.Status == "completed" {
				message = "Payment completed successfully!"
			}
			return c.JSON(fiber.Map{
				"success":         true,
				"paymentStatus":   status.Status,
				"referenceNumber": reference,
				"message":         message,
			})
		}
		log.Printf("GCash return status check failed for %s: %v", reference, err)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"paymentStatus":   models.PaymentStatusPending,
		"referenceNumber": reference,
		"message":         "Payment is being processed. You will receive a confirmation shortly.",
	})
}

type RefundRequest struct {
	Amount *float64 `json:"amount"`
	Reason *string  `json:"reason"`
}

// RefundPayment requests a provider refund. Only paid payments that carry a
// provider transaction can be refunded; paidDate is not reversed.
func RefundPayment(c *fiber.Ctx) error {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var req RefundRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if payment.Status != models.PaymentStatusPaid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Can only refund paid payments"})
	}
	if payment.TransactionID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No GCash transaction to refund"})
	}

	refundAmount := payment.Amount
	if req.Amount != nil {
		refundAmount = *req.Amount
	}

	result, err := payments.CreateRefund(*payment.TransactionID, &refundAmount)
	if err != nil {
		log.Printf("GCash refund failed for payment %s: %v", payment.ID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	reason := "User requested refund"
	if req.Reason != nil && *req.Reason != "" {
		reason = *req.Reason
	}
	now := time.Now()

	payment.Status = models.PaymentStatusRefunded
	payment.RefundID = &result.RefundID
	payment.RefundAmount = &result.Amount
	payment.RefundReason = &reason
	payment.RefundedAt = &now

	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Refund processed successfully",
		"refundId": result.RefundID,
		"amount":   result.Amount,
		"status":   result.Status,
	})
}
