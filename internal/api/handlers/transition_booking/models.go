package transition_booking

import (
	"time"

	transitionBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/transition_booking"
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

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		ClientUserID:       resp.ClientUserID,
		ProProfileID:       resp.ProProfileID,
		Category:           resp.Category,
		Status:             resp.Status,
		ScheduledAt:        resp.ScheduledAt.Format(time.RFC3339),
		HoursEstimate:      resp.HoursEstimate,
		AddressText:        resp.AddressText,
		HourlyRateSnapshot: resp.HourlyRateSnapshot,
		TotalAmount:        resp.TotalAmount,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
