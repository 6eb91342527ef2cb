package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor domain.Actor // аутентифицированный участник

	ProProfileID  string                 // ID профиля исполнителя
	Category      domain.ServiceCategory // категория услуги
	ScheduledAt   time.Time              // дата и время визита
	HoursEstimate int                    // оценка длительности в часах
	AddressText   string                 // адрес клиента
	TotalAmount   *int64                 // фиксированная цена (минорные единицы), опционально
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           string
	ClientUserID string
	ProProfileID *string
	Category     string
	Status       string

	ScheduledAt   time.Time
	HoursEstimate int
	AddressText   string

	HourlyRateSnapshot int64
	TotalAmount        *int64
	EstimatedAmount    int64 // сумма предавторизации

	CreatedAt time.Time
	UpdatedAt time.Time
}
