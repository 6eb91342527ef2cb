package get_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string  `json:"id"`
	ClientUserID  string  `json:"clientUserId"`
	ProProfileID  *string `json:"proProfileId,omitempty"`
	Category      string  `json:"category"`
	Status        string  `json:"status"`
	ScheduledAt   string  `json:"scheduledAt"`
	HoursEstimate int     `json:"hoursEstimate"`
	AddressText   string  `json:"addressText"`

	HourlyRateSnapshot int64  `json:"hourlyRateSnapshot"`
	TotalAmount        *int64 `json:"totalAmount,omitempty"`
	EstimatedAmount    int64  `json:"estimatedAmount"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		ClientUserID:       b.ClientUserID,
		ProProfileID:       b.ProProfileID,
		Category:           string(b.Category),
		Status:             string(b.Status),
		ScheduledAt:        b.ScheduledAt.Format(time.RFC3339),
		HoursEstimate:      b.HoursEstimate,
		AddressText:        b.AddressText,
		HourlyRateSnapshot: b.HourlyRateSnapshot,
		TotalAmount:        b.TotalAmount,
		EstimatedAmount:    b.EstimatedAmount(),
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}
}
