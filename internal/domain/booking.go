package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingPayment         BookingStatus = "PENDING_PAYMENT"
	StatusPendingProConfirmation BookingStatus = "PENDING_PRO_CONFIRMATION"
	StatusAccepted               BookingStatus = "ACCEPTED"
	StatusRejected               BookingStatus = "REJECTED"
	StatusOnMyWay                BookingStatus = "ON_MY_WAY"
	StatusArrived                BookingStatus = "ARRIVED"
	StatusInProgress             BookingStatus = "IN_PROGRESS"
	StatusAwaitingClientApproval BookingStatus = "AWAITING_CLIENT_APPROVAL"
	StatusCompleted              BookingStatus = "COMPLETED"
	StatusDisputed               BookingStatus = "DISPUTED"
	StatusPaid                   BookingStatus = "PAID"
	StatusCanceled               BookingStatus = "CANCELED"
)

// Booking represents a scheduled job between a client and a pro
type Booking struct {
	ID           string
	ClientUserID string
	ProProfileID *string // nil until a pro is assigned
	Category     ServiceCategory
	Status       BookingStatus

	ScheduledAt   time.Time
	HoursEstimate int
	AddressText   string

	// Snapshot of the pro's rate at creation time, minor currency units.
	// TotalAmount is fixed when the category uses flat pricing, otherwise
	// derived as HourlyRateSnapshot * HoursEstimate.
	HourlyRateSnapshot int64
	TotalAmount        *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusRejected ||
		b.Status == StatusCanceled ||
		b.Status == StatusPaid
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// EstimatedAmount возвращает сумму предавторизации в минорных единицах.
// Если задана фиксированная цена - используется она, иначе ставка * часы.
func (b *Booking) EstimatedAmount() int64 {
	if b.TotalAmount != nil {
		return *b.TotalAmount
	}
	return b.HourlyRateSnapshot * int64(b.HoursEstimate)
}

// BookingListFilter фильтр для выборки бронирований
type BookingListFilter struct {
	ClientUserID *string
	ProProfileID *string
	Status       *BookingStatus
	FromDate     *time.Time
	ToDate       *time.Time
}
