package get_user_bookings

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

type BookingService interface {
	ListForActor(ctx context.Context, actor domain.Actor, userID string, status *domain.BookingStatus) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
