package sync_payment

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"bookingId"`
	Provider  string `json:"provider"`
	Status    string `json:"status"`

	AmountEstimated  int64 `json:"amountEstimated"`
	AmountAuthorized int64 `json:"amountAuthorized"`
	AmountCaptured   int64 `json:"amountCaptured"`

	ProviderReference *string `json:"providerReference,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                p.ID,
		BookingID:         p.BookingID,
		Provider:          p.Provider,
		Status:            string(p.Status),
		AmountEstimated:   p.AmountEstimated,
		AmountAuthorized:  p.AmountAuthorized,
		AmountCaptured:    p.AmountCaptured,
		ProviderReference: p.ProviderReference,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}
