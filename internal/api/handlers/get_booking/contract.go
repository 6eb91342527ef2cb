package get_booking

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

type BookingService interface {
	GetByID(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
