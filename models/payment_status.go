package models

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusOverdue   = "overdue"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusRefunded  = "refunded"
)

// paymentTransitions is the single source of truth for which status moves are
// legal. Writes that would land outside this table are rejected; self
// transitions are always legal so duplicate webhook deliveries and repeated
// mark-paid calls just re-stamp the record.
var paymentTransitions = map[string][]string{
	PaymentStatusPending:   {PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusOverdue:   {PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusFailed:    {PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled},
	PaymentStatusCancelled: {PaymentStatusPending},
	PaymentStatusPaid:      {PaymentStatusRefunded},
	PaymentStatusRefunded:  {},
}

func IsPaymentStatus(status string) bool {
	_, ok := paymentTransitions[status]
	return ok
}

func CanTransitionPayment(from, to string) bool {
	if from == to {
		return IsPaymentStatus(from)
	}
	targets, ok := paymentTransitions[from]
	if !ok {
		return false
	}
	for _, target := range targets {
		if target == to {
			return true
		}
	}
	return false
}
