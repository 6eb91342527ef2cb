package get_payout

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// PayoutItemResponse позиция выплаты
type PayoutItemResponse struct {
	ID        string `json:"id"`
	EarningID string `json:"earningId"`
	Amount    int64  `json:"amount"`
}

// PayoutResponse HTTP response model
type PayoutResponse struct {
	ID           string `json:"id"`
	ProProfileID string `json:"proProfileId"`
	Provider     string `json:"provider"`
	Status       string `json:"status"`
	Currency     string `json:"currency"`
	Amount       int64  `json:"amount"`

	ProviderReference *string `json:"providerReference,omitempty"`

	Items []PayoutItemResponse `json:"items"`

	CreatedAt string  `json:"createdAt"`
	SentAt    *string `json:"sentAt,omitempty"`
}

// FromDomain конвертирует выплату и позиции в HTTP response
func FromDomain(p *domain.Payout, items []*domain.PayoutItem) *PayoutResponse {
	itemResponses := make([]PayoutItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, PayoutItemResponse{
			ID:        item.ID,
			EarningID: item.EarningID,
			Amount:    item.Amount,
		})
	}

	out := &PayoutResponse{
		ID:                p.ID,
		ProProfileID:      p.ProProfileID,
		Provider:          p.Provider,
		Status:            string(p.Status),
		Currency:          p.Currency,
		Amount:            p.Amount,
		ProviderReference: p.ProviderReference,
		Items:             itemResponses,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
	if p.SentAt != nil {
		sentAt := p.SentAt.Format(time.RFC3339)
		out.SentAt = &sentAt
	}
	return out
}
