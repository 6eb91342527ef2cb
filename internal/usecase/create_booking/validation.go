package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.Actor.UserID == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ProProfileID) == "" {
		return fmt.Errorf("%w: proProfileId is required", ErrInvalidInput)
	}

	if !domain.IsValidCategory(req.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}
	if req.ScheduledAt.Before(now) {
		return fmt.Errorf("%w: scheduledAt must be in the future", ErrInvalidInput)
	}

	if req.HoursEstimate < domain.MinHoursEstimate || req.HoursEstimate > domain.MaxHoursEstimate {
		return fmt.Errorf("%w: hoursEstimate must be between %d and %d",
			ErrInvalidInput, domain.MinHoursEstimate, domain.MaxHoursEstimate)
	}

	address := strings.TrimSpace(req.AddressText)
	if address == "" {
		return fmt.Errorf("%w: addressText is required", ErrInvalidInput)
	}
	if len(address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: addressText must be at most %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	if req.TotalAmount != nil && *req.TotalAmount <= 0 {
		return fmt.Errorf("%w: totalAmount must be positive", ErrInvalidInput)
	}

	return nil
}
