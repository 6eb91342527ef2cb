package transition_booking

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error)
}

// PaymentOrchestrator интерфейс оркестратора платежей для side effects
type PaymentOrchestrator interface {
	CaptureOnCompletion(ctx context.Context, booking *domain.Booking) error
	RefundOnCancellation(ctx context.Context, booking *domain.Booking) error
}

// Notifier интерфейс best-effort отправки уведомлений
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
