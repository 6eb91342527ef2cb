package create_preauth

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

type PaymentService interface {
	CreatePreauthForBooking(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
