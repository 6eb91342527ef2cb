package earnings

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// EarningRepository интерфейс репозитория заработков
type EarningRepository interface {
	Create(ctx context.Context, earning *domain.Earning) (*domain.Earning, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Earning, error)
}

// BookingRepository интерфейс репозитория бронирований (статистика профиля)
type BookingRepository interface {
	CountCompletedByPro(ctx context.Context, proProfileID string) (int, error)
}

// FeeCalculator вычисляет комиссию платформы.
// Чистая функция от суммы и категории: расписание комиссий может меняться,
// не затрагивая контракт леджера.
type FeeCalculator interface {
	Fee(amount int64, category domain.ServiceCategory) int64
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
