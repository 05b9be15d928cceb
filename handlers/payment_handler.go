package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
	"github.com/rlumactod/boarding_house/services"
)

type CreatePaymentRequest struct {
	TenantID   string  `json:"tenantId" validate:"required,uuid"`
	TenantName string  `json:"tenantName"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Month      string  `json:"month" validate:"required"`
	DueDate    string  `json:"dueDate"`
}

type UpdatePaymentRequest struct {
	Status        *string `json:"status"`
	PaidDate      *string `json:"paidDate"`
	PaymentMethod *string `json:"paymentMethod"`
}

func GetPayments(c *fiber.Ctx) error {
	var payments []models.Payment
	database.DB.Find(&payments)
	return c.JSON(payments)
}

func GetPayment(c *fiber.Ctx) error {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}
	return c.JSON(payment)
}

func GetTenantPayments(c *fiber.Ctx) error {
	var payments []models.Payment
	database.DB.Where("tenant_id = ?", c.Params("tenantId")).Find(&payments)
	return c.JSON(payments)
}

type statusBreakdown struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Total  float64 `json:"total"`
}

// GetPaymentSummary computes per-status totals on read. Nothing is cached;
// the ledger is small.
func GetPaymentSummary(c *fiber.Ctx) error {
	var breakdown []statusBreakdown
	err := database.DB.Model(&models.Payment{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Group("status").
		Scan(&breakdown).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	var totalCollected float64
	database.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&totalCollected)

	return c.JSON(fiber.Map{
		"byStatus":       breakdown,
		"totalCollected": totalCollected,
	})
}

// CreatePayment bills a tenant for one period. The initial status is always
// pending; any status supplied by the caller is ignored by construction.
// The tenant reference is deliberately not validated.
func CreatePayment(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tenant ID format"})
	}

	tenantName := req.TenantName
	if tenantName == "" {
		var tenant models.Tenant
		if err := database.DB.First(&tenant, "id = ?", tenantID).Error; err == nil {
			tenantName = tenant.Name
		}
	}

	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = time.Now().Format("2006-01-02")
	}

	payment := models.Payment{
		TenantID:   tenantID,
		TenantName: tenantName,
		Amount:     req.Amount,
		Month:      req.Month,
		DueDate:    dueDate,
		Status:     models.PaymentStatusPending,
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment"})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// UpdatePayment applies any subset of {status, paidDate, paymentMethod}.
// Status changes must be legal per the transition table.
func UpdatePayment(c *fiber.Ctx) error {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Status != nil {
		if !models.IsPaymentStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Unknown payment status: %s", *req.Status)})
		}
		if !models.CanTransitionPayment(payment.Status, *req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Illegal status transition from %s to %s", payment.Status, *req.Status),
			})
		}
		payment.Status = *req.Status
	}
	if req.PaidDate != nil {
		payment.PaidDate = req.PaidDate
	}
	if req.PaymentMethod != nil {
		payment.PaymentMethod = req.PaymentMethod
	}

	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return c.JSON(payment)
}

type MarkPaidRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// MarkPaymentPaid is the landlord confirming a payment by hand. Repeat calls
// re-stamp paidDate to the current date without error.
func MarkPaymentPaid(c *fiber.Ctx) error {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var req MarkPaidRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if !models.CanTransitionPayment(payment.Status, models.PaymentStatusPaid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Illegal status transition from %s to %s", payment.Status, models.PaymentStatusPaid),
		})
	}

	method := req.PaymentMethod
	if method == "" {
		method = "cash"
	}
	paidDate := time.Now().Format("2006-01-02")

	payment.Status = models.PaymentStatusPaid
	payment.PaidDate = &paidDate
	payment.PaymentMethod = &method

	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	go services.GenerateReceipt(payment)

	return c.JSON(payment)
}

type SubmitGcashProofRequest struct {
	GcashNumber    string  `json:"gcashNumber" validate:"required"`
	GcashRefNumber string  `json:"gcashRefNumber" validate:"required"`
	PaidDate       *string `json:"paidDate"`
}

// SubmitGcashProof records a boarder's claim of an off-platform GCash
// transfer. The payment stays pending until the landlord verifies it.
func SubmitGcashProof(c *fiber.Ctx) error {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var req SubmitGcashProofRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing GCash details"})
	}

	if !models.CanTransitionPayment(payment.Status, models.PaymentStatusPending) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Illegal status transition from %s to %s", payment.Status, models.PaymentStatusPending),
		})
	}

	method := "gcash"
	paidDate := time.Now().Format("2006-01-02")
	if req.PaidDate != nil && *req.PaidDate != "" {
		paidDate = *req.PaidDate
	}

	payment.Status = models.PaymentStatusPending
	payment.PaymentMethod = &method
	payment.PaidDate = &paidDate
	payment.GcashNumber = &req.GcashNumber
	payment.GcashRefNumber = &req.GcashRefNumber

	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "GCash payment proof submitted successfully",
		"payment": payment,
	})
}

type SubmitBankProofRequest struct {
	ReferenceNumber string  `json:"referenceNumber" validate:"required"`
	PaidDate        *string `json:"paidDate"`
}

func SubmitBankProof(c *fiber.Ctx) error {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var req SubmitBankProofRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing bank reference number"})
	}

	if !models.CanTransitionPayment(payment.Status, models.PaymentStatusPending) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Illegal status transition from %s to %s", payment.Status, models.PaymentStatusPending),
		})
	}

	method := "bank_transfer"
	paidDate := time.Now().Format("2006-01-02")
	if req.PaidDate != nil && *req.PaidDate != "" {
		paidDate = *req.PaidDate
	}

	payment.Status = models.PaymentStatusPending
	payment.PaymentMethod = &method
	payment.PaidDate = &paidDate
	payment.ReferenceNumber = &req.ReferenceNumber

	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Bank transfer proof submitted successfully",
		"payment": payment,
	})
}
