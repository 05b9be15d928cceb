package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is a single rent charge for a tenant. TenantName is denormalized
// at creation time so the ledger stays readable after a tenant is deleted.
// Rows are never deleted; provider-correlation fields stay nil until the
// GCash flow touches them.
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null" json:"tenantId"`
	TenantName string    `gorm:"size:255" json:"tenantName"`
	Amount     float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Month      string    `gorm:"size:50;not null" json:"month"`
	DueDate    string    `gorm:"size:10;not null" json:"dueDate"`
	PaidDate   *string   `gorm:"size:10" json:"paidDate"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	PaymentMethod *string `gorm:"size:20" json:"paymentMethod"`

	ReferenceNumber  *string    `gorm:"size:50" json:"referenceNumber"`
	TransactionID    *string    `gorm:"size:255" json:"transactionId"`
	FailureReason    *string    `gorm:"type:text" json:"failureReason"`
	GcashNumber      *string    `gorm:"size:30" json:"gcashNumber"`
	GcashRefNumber   *string    `gorm:"size:50" json:"gcashRefNumber"`
	GcashAmount      *float64   `gorm:"type:numeric(10,2)" json:"gcashAmount"`
	GcashInitiated   bool       `gorm:"default:false" json:"gcashInitiated"`
	GcashInitiatedAt *time.Time `json:"gcashInitiatedAt"`

	WebhookReceived   bool       `gorm:"default:false" json:"webhookReceived"`
	WebhookReceivedAt *time.Time `json:"webhookReceivedAt"`

	RefundID     *string    `gorm:"size:255" json:"refundId"`
	RefundAmount *float64   `gorm:"type:numeric(10,2)" json:"refundAmount"`
	RefundReason *string    `gorm:"type:text" json:"refundReason"`
	RefundedAt   *time.Time `json:"refundedAt"`

	ReceiptURL *string `gorm:"size:255" json:"receiptUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
