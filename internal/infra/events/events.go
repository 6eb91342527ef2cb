package events

// Routing keys событий жизненного цикла
const (
	RKBookingCreated          = "booking.created"
	RKBookingPaymentConfirmed = "booking.payment_confirmed"

	RKBookingAccepted  = "booking.accepted"
	RKBookingRejected  = "booking.rejected"
	RKBookingOnMyWay   = "booking.on_my_way"
	RKBookingArrived   = "booking.arrived"
	RKBookingStarted   = "booking.started"
	RKBookingFinished  = "booking.finished"
	RKBookingCompleted = "booking.completed"
	RKBookingDisputed  = "booking.disputed"
	RKBookingCancelled = "booking.cancelled"
	RKBookingPaid      = "booking.paid"

	RKPaymentAuthorized = "payment.authorized"
	RKPaymentCaptured   = "payment.captured"
	RKPaymentFailed     = "payment.failed"
	RKPaymentRefunded   = "payment.refunded"

	RKPayoutCreated = "payout.created"
	RKPayoutSent    = "payout.sent"
	RKPayoutSettled = "payout.settled"
	RKPayoutFailed  = "payout.failed"
)

// BookingEvent событие изменения статуса бронирования
type BookingEvent struct {
	BookingID    string `json:"booking_id"`
	ClientUserID string `json:"client_user_id"`
	ProProfileID string `json:"pro_profile_id,omitempty"`
	Status       string `json:"status"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
}

// PaymentEvent событие изменения статуса платежа
type PaymentEvent struct {
	PaymentID string `json:"payment_id"`
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// PayoutEvent событие изменения статуса выплаты
type PayoutEvent struct {
	PayoutID     string `json:"payout_id"`
	ProProfileID string `json:"pro_profile_id"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}
