package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	createBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProProfileID  string `json:"proProfileId"`
	Category      string `json:"category"`
	ScheduledAt   string `json:"scheduledAt"` // RFC3339
	HoursEstimate int    `json:"hoursEstimate"`
	AddressText   string `json:"addressText"`
	TotalAmount   *int64 `json:"totalAmount,omitempty"` // минорные единицы
}

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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Actor:         actor,
		ProProfileID:  r.ProProfileID,
		Category:      domain.ServiceCategory(r.Category),
		ScheduledAt:   scheduledAt,
		HoursEstimate: r.HoursEstimate,
		AddressText:   r.AddressText,
		TotalAmount:   r.TotalAmount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
		EstimatedAmount:    resp.EstimatedAmount,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
