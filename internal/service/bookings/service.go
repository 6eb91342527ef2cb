package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
)

// Service запросы чтения бронирований. Видимость: клиент видит свои
// бронирования, исполнитель - назначенные на его профиль, админ - любые.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый сервис чтения бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID возвращает бронирование, если актор имеет право его видеть
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - get booking: %v", ErrInternal, err)
	}

	if !canView(actor, booking) {
		s.logger.Warn("GetByID: actor=%s role=%s denied access to booking=%s", actor.UserID, actor.Role, bookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// ListForActor возвращает бронирования пользователя userID.
// Не-админ может запрашивать только собственный список.
func (s *Service) ListForActor(ctx context.Context, actor domain.Actor, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if actor.Role != domain.RoleAdmin && actor.UserID != userID {
		return nil, ErrAccessDenied
	}

	filter := domain.BookingListFilter{Status: status}

	switch {
	case actor.Role == domain.RolePro && actor.UserID == userID:
		if actor.ProProfileID == nil {
			return []*domain.Booking{}, nil
		}
		filter.ProProfileID = actor.ProProfileID
	default:
		filter.ClientUserID = &userID
	}

	list, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForActor - list bookings: %v", ErrInternal, err)
	}

	return list, nil
}

func canView(actor domain.Actor, booking *domain.Booking) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleClient:
		return booking.ClientUserID == actor.UserID
	case domain.RolePro:
		return actor.ProProfileID != nil &&
			booking.ProProfileID != nil &&
			*actor.ProProfileID == *booking.ProProfileID
	}
	return false
}
