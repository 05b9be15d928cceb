package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionPayment(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to paid", PaymentStatusPending, PaymentStatusPaid, true},
		{"pending to overdue", PaymentStatusPending, PaymentStatusOverdue, true},
		{"pending to failed", PaymentStatusPending, PaymentStatusFailed, true},
		{"pending to cancelled", PaymentStatusPending, PaymentStatusCancelled, true},
		{"pending to refunded", PaymentStatusPending, PaymentStatusRefunded, false},
		{"overdue to paid", PaymentStatusOverdue, PaymentStatusPaid, true},
		{"overdue to pending", PaymentStatusOverdue, PaymentStatusPending, true},
		{"failed to pending", PaymentStatusFailed, PaymentStatusPending, true},
		{"cancelled to pending", PaymentStatusCancelled, PaymentStatusPending, true},
		{"paid to pending", PaymentStatusPaid, PaymentStatusPending, false},
		{"paid to refunded", PaymentStatusPaid, PaymentStatusRefunded, true},
		{"refunded is terminal", PaymentStatusRefunded, PaymentStatusPaid, false},
		{"refunded to pending", PaymentStatusRefunded, PaymentStatusPending, false},
		{"unknown from", "bogus", PaymentStatusPaid, false},
		{"unknown to", PaymentStatusPending, "bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionPayment(tt.from, tt.to))
		})
	}
}

func TestSelfTransitionsAreAllowed(t *testing.T) {
	for _, status := range []string{
		PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue,
		PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded,
	} {
		assert.True(t, CanTransitionPayment(status, status), "self transition for %s", status)
	}
}

func TestIsPaymentStatus(t *testing.T) {
	assert.True(t, IsPaymentStatus(PaymentStatusPending))
	assert.True(t, IsPaymentStatus(PaymentStatusRefunded))
	assert.False(t, IsPaymentStatus("succeeded"))
	assert.False(t, IsPaymentStatus(""))
}
