package transition_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модель запроса на переход бронирования
type Request struct {
	Actor     domain.Actor
	BookingID string
	Target    domain.BookingStatus // целевой статус перехода
}

// Response модель ответа с бронированием после перехода
type Response struct {
	ID           string
	ClientUserID string
	ProProfileID *string
	Category     string
	Status       string

	ScheduledAt   time.Time
	HoursEstimate int
	AddressText   string

	HourlyRateSnapshot int64
	TotalAmount        *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
