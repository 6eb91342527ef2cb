package create_payout

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модель запроса на сборку выплаты
type Request struct {
	Actor        domain.Actor
	ProProfileID string
}

// Response модель ответа с созданной выплатой
type Response struct {
	ID           string
	ProProfileID string
	Provider     string
	Status       string
	Currency     string
	Amount       int64

	ProviderReference *string

	CreatedAt time.Time
	SentAt    *time.Time
}
