package create_payout

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
)

// PayoutAggregator интерфейс агрегатора выплат
type PayoutAggregator interface {
	ClaimEarnings(ctx context.Context, proProfileID string) (*domain.Payout, error)
	Send(ctx context.Context, actor domain.Actor, payoutID string) (*domain.Payout, error)
}

// Locker интерфейс распределённой блокировки
type Locker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Notifier интерфейс best-effort отправки уведомлений
type Notifier interface {
	PayoutEvent(ctx context.Context, routingKey string, event events.PayoutEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
