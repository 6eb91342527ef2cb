package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
)

// UseCase use case перехода бронирования по жизненному циклу.
// Единственная точка, меняющая статус бронирования: проверка таблицы
// переходов, прав актора и compare-and-swap выполняются в одной
// транзакции, side effects - после коммита.
type UseCase struct {
	bookingRepo BookingRepository
	payments    PaymentOrchestrator
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	payments PaymentOrchestrator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		payments:    payments,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет переход бронирования в целевой статус.
// Порядок проверок фиксирован: сначала допустимость перехода таблицей,
// затем права актора. Запрещённый переход возвращает ErrInvalidTransition
// даже для админа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%s target=%s actor=%s role=%s",
		req.BookingID, req.Target, req.Actor.UserID, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Читаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to get booking=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Переход должен быть разрешён таблицей жизненного цикла
		if !domain.CanTransition(booking.Status, req.Target) {
			uc.logger.Warn("TransitionBooking: transition %s -> %s is not allowed, booking=%s",
				booking.Status, req.Target, req.BookingID)
			return ErrInvalidTransition
		}

		// 3. Актор должен иметь право на действие этого перехода
		action := domain.ActionForTarget(req.Target)
		if !domain.CanPerform(req.Actor, booking, action) {
			uc.logger.Warn("TransitionBooking: actor=%s role=%s denied action=%s on booking=%s",
				req.Actor.UserID, req.Actor.Role, action, req.BookingID)
			return ErrAccessDenied
		}

		// 4. Compare-and-swap по исходному статусу
		updated, err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, booking.Status, req.Target)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrStatusConflict
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to update booking=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionBooking: booking=%s moved to %s", result.ID, result.Status)

	// Side effects после коммита: их сбои логируются и проглатываются,
	// уже применённый переход они не откатывают.
	uc.runSideEffects(ctx, result)

	return toResponse(result), nil
}

func (uc *UseCase) runSideEffects(ctx context.Context, booking *domain.Booking) {
	uc.notifier.BookingStatusChanged(ctx, booking)

	switch booking.Status {
	case domain.StatusCompleted:
		if err := uc.payments.CaptureOnCompletion(ctx, booking); err != nil {
			uc.logger.Error("TransitionBooking: capture failed for booking=%s: %v", booking.ID, err)
		}
	case domain.StatusCanceled:
		if err := uc.payments.RefundOnCancellation(ctx, booking); err != nil {
			uc.logger.Error("TransitionBooking: refund failed for booking=%s: %v", booking.ID, err)
		}
	}
}

func validateRequest(req *Request) error {
	if req.Actor.UserID == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	for _, s := range domain.AllBookingStatuses {
		if s == req.Target {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown target status %q", ErrInvalidInput, req.Target)
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
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
