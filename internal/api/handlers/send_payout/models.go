package send_payout

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// PayoutResponse HTTP response model
type PayoutResponse struct {
	ID           string `json:"id"`
	ProProfileID string `json:"proProfileId"`
	Provider     string `json:"provider"`
	Status       string `json:"status"`
	Currency     string `json:"currency"`
	Amount       int64  `json:"amount"`

	ProviderReference *string `json:"providerReference,omitempty"`

	CreatedAt string  `json:"createdAt"`
	SentAt    *string `json:"sentAt,omitempty"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(p *domain.Payout) *PayoutResponse {
	out := &PayoutResponse{
		ID:                p.ID,
		ProProfileID:      p.ProProfileID,
		Provider:          p.Provider,
		Status:            string(p.Status),
		Currency:          p.Currency,
		Amount:            p.Amount,
		ProviderReference: p.ProviderReference,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
	if p.SentAt != nil {
		sentAt := p.SentAt.Format(time.RFC3339)
		out.SentAt = &sentAt
	}
	return out
}
