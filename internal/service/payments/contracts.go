package payments

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/paymentprovider"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error
	MarkAuthorized(ctx context.Context, id string, from domain.PaymentStatus, amountAuthorized int64) error
	MarkCaptured(ctx context.Context, id string, amountCaptured int64) error
	SetProviderReference(ctx context.Context, id string, providerReference, checkoutURL *string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error)
}

// ProviderClient интерфейс клиента платёжного провайдера
type ProviderClient interface {
	Name() string
	CreatePreauth(ctx context.Context, req paymentprovider.PreauthRequest) (*paymentprovider.PreauthResult, error)
	Capture(ctx context.Context, providerReference string, amount int64) (*paymentprovider.CaptureResult, error)
	Refund(ctx context.Context, providerReference string) error
	Void(ctx context.Context, providerReference string) error
	GetStatus(ctx context.Context, providerReference string) (*paymentprovider.PaymentState, error)
}

// EarningRecorder интерфейс леджера заработков
type EarningRecorder interface {
	RecordEarning(ctx context.Context, booking *domain.Booking, payment *domain.Payment) (*domain.Earning, error)
}

// Notifier интерфейс best-effort отправки уведомлений
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking)
	PaymentEvent(ctx context.Context, routingKey string, event events.PaymentEvent)
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
