package sync_payment

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

type PaymentService interface {
	SyncStatus(ctx context.Context, paymentID string) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
