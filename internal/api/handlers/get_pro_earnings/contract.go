package get_pro_earnings

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

type PayoutService interface {
	ListPayableEarnings(ctx context.Context, actor domain.Actor, proProfileID string) ([]*domain.Earning, int64, error)
}

type EarningService interface {
	GetProStats(ctx context.Context, proProfileID string) (*domain.ProStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
