package domain

import "time"

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentCreated        PaymentStatus = "CREATED"
	PaymentRequiresAction PaymentStatus = "REQUIRES_ACTION"
	PaymentAuthorized     PaymentStatus = "AUTHORIZED"
	PaymentCaptured       PaymentStatus = "CAPTURED"
	PaymentFailed         PaymentStatus = "FAILED"
	PaymentCancelled      PaymentStatus = "CANCELLED"
	PaymentRefunded       PaymentStatus = "REFUNDED"
)

// Payment represents the preauthorization hold tied 1:1 to a booking.
// All amounts are in minor currency units.
type Payment struct {
	ID        string
	BookingID string
	Provider  string
	Status    PaymentStatus

	AmountEstimated  int64
	AmountAuthorized int64
	AmountCaptured   int64

	CheckoutURL       *string
	ProviderReference *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentTransitions defines the valid payment status moves. Statuses only
// move forward: REFUNDED is reachable from CAPTURED only, FAILED and
// CANCELLED are terminal with no further capture.
var PaymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentCreated: {
		PaymentRequiresAction,
		PaymentAuthorized,
		PaymentFailed,
		PaymentCancelled,
	},
	PaymentRequiresAction: {
		PaymentAuthorized,
		PaymentFailed,
		PaymentCancelled,
	},
	PaymentAuthorized: {
		PaymentCaptured,
		PaymentFailed,
		PaymentCancelled,
	},
	PaymentCaptured: {
		PaymentRefunded,
	},
	PaymentFailed:    {},
	PaymentCancelled: {},
	PaymentRefunded:  {},
}

// CanTransitionPayment checks if a payment status move is allowed
func CanTransitionPayment(from, to PaymentStatus) bool {
	allowed, exists := PaymentTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further payment transition is possible
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentFailed ||
		p.Status == PaymentCancelled ||
		p.Status == PaymentRefunded
}
