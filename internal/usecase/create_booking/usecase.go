package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	proClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/prodirectory"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

// proStatusSuspended статус профиля, при котором исполнитель не принимает заказы
const proStatusSuspended = "suspended"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	proDir       ProDirectoryClient
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	proDir ProDirectoryClient,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		proDir:       proDir,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Бронирование создается в статусе PENDING_PAYMENT со снимком ставки
// исполнителя: дальнейшие изменения ставки на цену заказа не влияют.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s pro=%s category=%s scheduledAt=%s",
		req.Actor.UserID, req.ProProfileID, req.Category, req.ScheduledAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Создавать бронирования могут только клиенты (и админ от их имени)
	if req.Actor.Role != domain.RoleClient && req.Actor.Role != domain.RoleAdmin {
		uc.logger.Warn("CreateBooking: role=%s cannot create bookings", req.Actor.Role)
		return nil, ErrAccessDenied
	}

	// 3. Получаем профиль исполнителя и снимаем ставку
	profile, err := uc.proDir.GetProfile(ctx, req.ProProfileID)
	if err != nil {
		if errors.Is(err, proClient.ErrProfileNotFound) {
			uc.logger.Warn("CreateBooking: pro profile=%s not found", req.ProProfileID)
			return nil, ErrProNotFound
		}
		uc.logger.Error("CreateBooking: failed to get pro profile=%s: %v", req.ProProfileID, err)
		return nil, fmt.Errorf("%w: failed to get pro profile: %v", ErrInternal, err)
	}

	if profile.Status == proStatusSuspended {
		uc.logger.Warn("CreateBooking: pro profile=%s is suspended", req.ProProfileID)
		return nil, ErrProSuspended
	}

	// 4. Создаем бронирование
	booking := &domain.Booking{
		ClientUserID:       req.Actor.UserID,
		ProProfileID:       ptr.Ptr(profile.ID),
		Category:           req.Category,
		Status:             domain.StatusPendingPayment,
		ScheduledAt:        req.ScheduledAt,
		HoursEstimate:      req.HoursEstimate,
		AddressText:        strings.TrimSpace(req.AddressText),
		HourlyRateSnapshot: profile.HourlyRate,
		TotalAmount:        req.TotalAmount,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking=%s amount=%d", created.ID, created.EstimatedAmount())

	// 5. Уведомление best-effort, ошибка доставки не откатывает создание
	uc.notifier.BookingCreated(ctx, created)

	return toResponse(created), nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                 b.ID,
		ClientUserID:       b.ClientUserID,
		ProProfileID:       b.ProProfileID,
		Category:           string(b.Category),
		Status:             string(b.Status),
		ScheduledAt:        b.ScheduledAt,
		HoursEstimate:      b.HoursEstimate,
		AddressText:        b.AddressText,
		HourlyRateSnapshot: b.HourlyRateSnapshot,
		TotalAmount:        b.TotalAmount,
		EstimatedAmount:    b.EstimatedAmount(),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
