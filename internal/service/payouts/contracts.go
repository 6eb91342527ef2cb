package payouts

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/payoutprovider"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/prodirectory"
)

// PayoutRepository интерфейс репозитория выплат
type PayoutRepository interface {
	Create(ctx context.Context, p *domain.Payout) (*domain.Payout, error)
	CreateItems(ctx context.Context, payoutID string, earnings []*domain.Earning) ([]*domain.PayoutItem, error)
	GetByID(ctx context.Context, id string) (*domain.Payout, error)
	ListItems(ctx context.Context, payoutID string) ([]*domain.PayoutItem, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.PayoutStatus) error
	SetProviderReference(ctx context.Context, id string, providerReference string) error
}

// EarningRepository интерфейс репозитория заработков
type EarningRepository interface {
	ListPayableByPro(ctx context.Context, proProfileID string) ([]*domain.Earning, error)
}

// ProviderClient интерфейс клиента провайдера выплат
type ProviderClient interface {
	Name() string
	CreatePayout(ctx context.Context, req payoutprovider.CreatePayoutRequest) (*payoutprovider.CreatePayoutResult, error)
	GetStatus(ctx context.Context, providerReference string) (*payoutprovider.PayoutState, error)
}

// ProDirectoryClient интерфейс клиента справочника исполнителей
type ProDirectoryClient interface {
	GetPayoutProfile(ctx context.Context, proProfileID string) (*prodirectory.PayoutProfile, error)
}

// Notifier интерфейс best-effort отправки уведомлений
type Notifier interface {
	PayoutEvent(ctx context.Context, routingKey string, event events.PayoutEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RetryPolicy бюджет повторов для transient-ошибок провайдера
type RetryPolicy struct {
	MaxAttempts int
	BaseDelayMs int
}
