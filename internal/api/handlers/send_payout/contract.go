package send_payout

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

type PayoutService interface {
	Send(ctx context.Context, actor domain.Actor, payoutID string) (*domain.Payout, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
