package create_payout

import (
	"time"

	createPayout "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_payout"
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPayout.Response) *PayoutResponse {
	out := &PayoutResponse{
		ID:                resp.ID,
		ProProfileID:      resp.ProProfileID,
		Provider:          resp.Provider,
		Status:            resp.Status,
		Currency:          resp.Currency,
		Amount:            resp.Amount,
		ProviderReference: resp.ProviderReference,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.SentAt != nil {
		sentAt := resp.SentAt.Format(time.RFC3339)
		out.SentAt = &sentAt
	}
	return out
}
