package get_user_bookings

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingItem элемент списка бронирований
type BookingItem struct {
	ID            string  `json:"id"`
	ClientUserID  string  `json:"clientUserId"`
	ProProfileID  *string `json:"proProfileId,omitempty"`
	Category      string  `json:"category"`
	Status        string  `json:"status"`
	ScheduledAt   string  `json:"scheduledAt"`
	HoursEstimate int     `json:"hoursEstimate"`

	EstimatedAmount int64 `json:"estimatedAmount"`

	CreatedAt string `json:"createdAt"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Bookings []BookingItem `json:"bookings"`
	Total    int           `json:"total"`
}

// FromDomainList конвертирует список бронирований в HTTP response
func FromDomainList(list []*domain.Booking) *ListResponse {
	items := make([]BookingItem, 0, len(list))
	for _, b := range list {
		items = append(items, BookingItem{
			ID:              b.ID,
			ClientUserID:    b.ClientUserID,
			ProProfileID:    b.ProProfileID,
			Category:        string(b.Category),
			Status:          string(b.Status),
			ScheduledAt:     b.ScheduledAt.Format(time.RFC3339),
			HoursEstimate:   b.HoursEstimate,
			EstimatedAmount: b.EstimatedAmount(),
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		})
	}
	return &ListResponse{
		Bookings: items,
		Total:    len(items),
	}
}
