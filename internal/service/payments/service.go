package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-MarketplaceService/pkg/retry"
)

// Service оркестратор платежей. Транслирует статусы провайдера во
// внутренние статусы платежа и двигает бронирование по факту оплаты.
// Transient-ошибки провайдера повторяются в рамках бюджета RetryPolicy,
// permanent-отказы фиксируются сразу.
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	provider    ProviderClient
	earnings    EarningRecorder
	notifier    Notifier
	logger      Logger

	retryPolicy RetryPolicy
	currency    string
}

// NewService создает новый оркестратор платежей
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	provider ProviderClient,
	earnings EarningRecorder,
	notifier Notifier,
	logger Logger,
	retryPolicy RetryPolicy,
	currency string,
) *Service {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		provider:    provider,
		earnings:    earnings,
		notifier:    notifier,
		logger:      logger,
		retryPolicy: retryPolicy,
		currency:    currency,
	}
}

// CreatePreauthForBooking создает предавторизацию для бронирования.
// Идемпотентна: повторный вызов возвращает уже существующий платёж
// вместо создания второй предавторизации у провайдера.
func (s *Service) CreatePreauthForBooking(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Payment, error) {
	s.logger.Info("CreatePreauthForBooking: booking=%s actor=%s", bookingID, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: CreatePreauthForBooking - get booking: %v", ErrInternal, err)
	}

	if actor.Role != domain.RoleAdmin && booking.ClientUserID != actor.UserID {
		s.logger.Warn("CreatePreauthForBooking: actor=%s is not the owner of booking=%s", actor.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	existing, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err == nil {
		s.logger.Info("CreatePreauthForBooking: payment=%s already exists for booking=%s", existing.ID, bookingID)
		return existing, nil
	}
	if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		return nil, fmt.Errorf("%w: CreatePreauthForBooking - get payment: %v", ErrInternal, err)
	}

	payment := &domain.Payment{
		BookingID:       bookingID,
		Provider:        s.provider.Name(),
		Status:          domain.PaymentCreated,
		AmountEstimated: booking.EstimatedAmount(),
	}

	payment, err = s.paymentRepo.Create(ctx, payment)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrDuplicatePayment) {
			// Параллельный вызов успел первым, возвращаем его платёж
			return s.paymentRepo.GetByBookingID(ctx, bookingID)
		}
		return nil, fmt.Errorf("%w: CreatePreauthForBooking - create payment: %v", ErrInternal, err)
	}

	result, err := s.createPreauthWithRetry(ctx, paymentprovider.PreauthRequest{
		Reference: payment.ID,
		Amount:    payment.AmountEstimated,
		Currency:  s.currency,
		Customer:  booking.ClientUserID,
	})
	if err != nil {
		if errors.Is(err, paymentprovider.ErrRejected) {
			s.logger.Warn("CreatePreauthForBooking: provider rejected preauth for payment=%s: %v", payment.ID, err)
			if updErr := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentCreated, domain.PaymentFailed); updErr != nil {
				s.logger.Error("CreatePreauthForBooking: failed to mark payment=%s FAILED: %v", payment.ID, updErr)
			}
			return nil, fmt.Errorf("%w: %v", ErrPreauthRejected, err)
		}
		s.logger.Error("CreatePreauthForBooking: provider unavailable for payment=%s: %v", payment.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	var checkoutURL *string
	if result.CheckoutURL != "" {
		checkoutURL = &result.CheckoutURL
	}
	if err := s.paymentRepo.SetProviderReference(ctx, payment.ID, &result.ProviderReference, checkoutURL); err != nil {
		return nil, fmt.Errorf("%w: CreatePreauthForBooking - save provider reference: %v", ErrInternal, err)
	}
	payment.ProviderReference = &result.ProviderReference
	payment.CheckoutURL = checkoutURL

	if result.Status == "requires_action" {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentCreated, domain.PaymentRequiresAction); err != nil {
			return nil, fmt.Errorf("%w: CreatePreauthForBooking - update status: %v", ErrInternal, err)
		}
		payment.Status = domain.PaymentRequiresAction
	}

	s.logger.Info("CreatePreauthForBooking: created payment=%s for booking=%s amount=%d",
		payment.ID, bookingID, payment.AmountEstimated)

	return payment, nil
}

// CaptureOnCompletion списывает авторизованную сумму после подтверждения
// работы клиентом и записывает заработок исполнителя. Вызывается после
// коммита перехода бронирования в COMPLETED.
func (s *Service) CaptureOnCompletion(ctx context.Context, booking *domain.Booking) error {
	s.logger.Info("CaptureOnCompletion: booking=%s", booking.ID)

	payment, err := s.paymentRepo.GetByBookingID(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("%w: CaptureOnCompletion - get payment: %v", ErrInternal, err)
	}

	if payment.Status == domain.PaymentCaptured {
		s.logger.Info("CaptureOnCompletion: payment=%s already captured", payment.ID)
		return nil
	}
	if payment.Status != domain.PaymentAuthorized {
		s.logger.Warn("CaptureOnCompletion: payment=%s is not authorized, status=%s", payment.ID, payment.Status)
		return ErrPaymentNotAuthorized
	}
	if payment.ProviderReference == nil {
		return fmt.Errorf("%w: CaptureOnCompletion - payment=%s has no provider reference", ErrInternal, payment.ID)
	}

	var result *paymentprovider.CaptureResult
	err = retry.Do(ctx, s.retryPolicy.MaxAttempts, s.baseDelay(), func() error {
		var captureErr error
		result, captureErr = s.provider.Capture(ctx, *payment.ProviderReference, payment.AmountAuthorized)
		return captureErr
	}, func(err error) bool {
		return errors.Is(err, paymentprovider.ErrUnavailable)
	})

	if err != nil {
		if errors.Is(err, paymentprovider.ErrRejected) {
			s.logger.Error("CaptureOnCompletion: provider rejected capture for payment=%s: %v", payment.ID, err)
			if updErr := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentAuthorized, domain.PaymentFailed); updErr != nil {
				s.logger.Error("CaptureOnCompletion: failed to mark payment=%s FAILED: %v", payment.ID, updErr)
			}
			s.notifier.PaymentEvent(ctx, events.RKPaymentFailed, events.PaymentEvent{
				PaymentID: payment.ID,
				BookingID: booking.ID,
				Status:    string(domain.PaymentFailed),
				Amount:    payment.AmountAuthorized,
				Currency:  s.currency,
			})
			return fmt.Errorf("%w: %v", ErrCaptureFailed, err)
		}
		s.logger.Error("CaptureOnCompletion: provider unavailable for payment=%s after %d attempts: %v",
			payment.ID, s.retryPolicy.MaxAttempts, err)
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if err := s.paymentRepo.MarkCaptured(ctx, payment.ID, result.AmountCaptured); err != nil {
		return fmt.Errorf("%w: CaptureOnCompletion - mark captured: %v", ErrInternal, err)
	}
	payment.Status = domain.PaymentCaptured
	payment.AmountCaptured = result.AmountCaptured

	if _, err := s.earnings.RecordEarning(ctx, booking, payment); err != nil {
		// Списание прошло, заработок записать не удалось. Оставляем
		// на ручную сверку, списание не откатываем.
		s.logger.Error("CaptureOnCompletion: failed to record earning for booking=%s: %v", booking.ID, err)
	}

	s.notifier.PaymentEvent(ctx, events.RKPaymentCaptured, events.PaymentEvent{
		PaymentID: payment.ID,
		BookingID: booking.ID,
		Status:    string(domain.PaymentCaptured),
		Amount:    result.AmountCaptured,
		Currency:  s.currency,
	})

	s.logger.Info("CaptureOnCompletion: captured payment=%s amount=%d", payment.ID, result.AmountCaptured)

	return nil
}

// RefundOnCancellation снимает удержание средств при отмене бронирования.
// CAPTURED возвращается, AUTHORIZED аннулируется, ещё не авторизованный
// платёж закрывается локально без обращения к провайдеру.
func (s *Service) RefundOnCancellation(ctx context.Context, booking *domain.Booking) error {
	s.logger.Info("RefundOnCancellation: booking=%s", booking.ID)

	payment, err := s.paymentRepo.GetByBookingID(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			// Отмена до создания платежа, снимать нечего
			return nil
		}
		return fmt.Errorf("%w: RefundOnCancellation - get payment: %v", ErrInternal, err)
	}

	switch payment.Status {
	case domain.PaymentCaptured:
		return s.refundCaptured(ctx, booking, payment)
	case domain.PaymentAuthorized:
		return s.voidAuthorized(ctx, booking, payment)
	case domain.PaymentCreated, domain.PaymentRequiresAction:
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, payment.Status, domain.PaymentCancelled); err != nil {
			if errors.Is(err, paymentRepo.ErrStatusConflict) {
				// Статус успел измениться, перечитываем и пробуем снова
				return s.RefundOnCancellation(ctx, booking)
			}
			return fmt.Errorf("%w: RefundOnCancellation - cancel payment: %v", ErrInternal, err)
		}
		s.logger.Info("RefundOnCancellation: cancelled payment=%s locally", payment.ID)
		return nil
	case domain.PaymentCancelled, domain.PaymentRefunded:
		s.logger.Info("RefundOnCancellation: payment=%s already released, status=%s", payment.ID, payment.Status)
		return nil
	default:
		s.logger.Warn("RefundOnCancellation: payment=%s is not refundable, status=%s", payment.ID, payment.Status)
		return ErrPaymentNotRefundable
	}
}

func (s *Service) refundCaptured(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	if payment.ProviderReference == nil {
		return fmt.Errorf("%w: refundCaptured - payment=%s has no provider reference", ErrInternal, payment.ID)
	}

	err := retry.Do(ctx, s.retryPolicy.MaxAttempts, s.baseDelay(), func() error {
		return s.provider.Refund(ctx, *payment.ProviderReference)
	}, func(err error) bool {
		return errors.Is(err, paymentprovider.ErrUnavailable)
	})
	if err != nil {
		s.logger.Error("refundCaptured: refund failed for payment=%s: %v", payment.ID, err)
		if errors.Is(err, paymentprovider.ErrRejected) {
			return fmt.Errorf("%w: %v", ErrPaymentNotRefundable, err)
		}
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentCaptured, domain.PaymentRefunded); err != nil {
		return fmt.Errorf("%w: refundCaptured - update status: %v", ErrInternal, err)
	}

	s.notifier.PaymentEvent(ctx, events.RKPaymentRefunded, events.PaymentEvent{
		PaymentID: payment.ID,
		BookingID: booking.ID,
		Status:    string(domain.PaymentRefunded),
		Amount:    payment.AmountCaptured,
		Currency:  s.currency,
	})

	s.logger.Info("refundCaptured: refunded payment=%s amount=%d", payment.ID, payment.AmountCaptured)
	return nil
}

func (s *Service) voidAuthorized(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	if payment.ProviderReference == nil {
		return fmt.Errorf("%w: voidAuthorized - payment=%s has no provider reference", ErrInternal, payment.ID)
	}

	err := retry.Do(ctx, s.retryPolicy.MaxAttempts, s.baseDelay(), func() error {
		return s.provider.Void(ctx, *payment.ProviderReference)
	}, func(err error) bool {
		return errors.Is(err, paymentprovider.ErrUnavailable)
	})
	if err != nil {
		s.logger.Error("voidAuthorized: void failed for payment=%s: %v", payment.ID, err)
		if errors.Is(err, paymentprovider.ErrRejected) {
			return fmt.Errorf("%w: %v", ErrPaymentNotRefundable, err)
		}
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentAuthorized, domain.PaymentCancelled); err != nil {
		return fmt.Errorf("%w: voidAuthorized - update status: %v", ErrInternal, err)
	}

	s.notifier.PaymentEvent(ctx, events.RKPaymentRefunded, events.PaymentEvent{
		PaymentID: payment.ID,
		BookingID: booking.ID,
		Status:    string(domain.PaymentCancelled),
		Amount:    payment.AmountAuthorized,
		Currency:  s.currency,
	})

	s.logger.Info("voidAuthorized: voided payment=%s amount=%d", payment.ID, payment.AmountAuthorized)
	return nil
}

// SyncStatus сверяет платёж с провайдером и подтягивает локальный статус.
// Источник истины - провайдер. Идемпотентна: если статусы уже совпадают,
// ничего не меняет. При первой увиденной авторизации двигает бронирование
// PENDING_PAYMENT -> PENDING_PRO_CONFIRMATION.
func (s *Service) SyncStatus(ctx context.Context, paymentID string) (*domain.Payment, error) {
	s.logger.Info("SyncStatus: payment=%s", paymentID)

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: SyncStatus - get payment: %v", ErrInternal, err)
	}

	if payment.ProviderReference == nil {
		s.logger.Warn("SyncStatus: payment=%s has no provider reference, nothing to sync", paymentID)
		return payment, nil
	}

	var state *paymentprovider.PaymentState
	err = retry.Do(ctx, s.retryPolicy.MaxAttempts, s.baseDelay(), func() error {
		var stateErr error
		state, stateErr = s.provider.GetStatus(ctx, *payment.ProviderReference)
		return stateErr
	}, func(err error) bool {
		return errors.Is(err, paymentprovider.ErrUnavailable)
	})
	if err != nil {
		s.logger.Error("SyncStatus: provider status fetch failed for payment=%s: %v", paymentID, err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	target := providerStatusToDomain(state.Status)
	if target == "" {
		s.logger.Warn("SyncStatus: unknown provider status=%q for payment=%s", state.Status, paymentID)
		return payment, nil
	}

	if target == payment.Status {
		s.logger.Info("SyncStatus: payment=%s already in status=%s", paymentID, payment.Status)
		return payment, nil
	}

	if !domain.CanTransitionPayment(payment.Status, target) {
		s.logger.Warn("SyncStatus: provider reports %s but local transition %s -> %s is not allowed, payment=%s",
			state.Status, payment.Status, target, paymentID)
		return payment, nil
	}

	if err := s.applySyncedStatus(ctx, payment, target, state); err != nil {
		return nil, err
	}

	updated, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: SyncStatus - reread payment: %v", ErrInternal, err)
	}

	s.logger.Info("SyncStatus: payment=%s moved %s -> %s", paymentID, payment.Status, updated.Status)

	return updated, nil
}

func (s *Service) applySyncedStatus(ctx context.Context, payment *domain.Payment, target domain.PaymentStatus, state *paymentprovider.PaymentState) error {
	switch target {
	case domain.PaymentAuthorized:
		if err := s.paymentRepo.MarkAuthorized(ctx, payment.ID, payment.Status, state.AmountAuthorized); err != nil {
			if errors.Is(err, paymentRepo.ErrStatusConflict) {
				// Параллельная сверка успела первой
				return nil
			}
			return fmt.Errorf("%w: applySyncedStatus - mark authorized: %v", ErrInternal, err)
		}
		s.onAuthorized(ctx, payment, state.AmountAuthorized)
	case domain.PaymentCaptured:
		if err := s.paymentRepo.MarkCaptured(ctx, payment.ID, state.AmountCaptured); err != nil {
			if errors.Is(err, paymentRepo.ErrStatusConflict) {
				return nil
			}
			return fmt.Errorf("%w: applySyncedStatus - mark captured: %v", ErrInternal, err)
		}
	default:
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, payment.Status, target); err != nil {
			if errors.Is(err, paymentRepo.ErrStatusConflict) {
				return nil
			}
			return fmt.Errorf("%w: applySyncedStatus - update status: %v", ErrInternal, err)
		}
	}
	return nil
}

// onAuthorized двигает бронирование к исполнителю по факту подтверждённой
// оплаты. CAS-конфликт означает, что бронирование уже ушло дальше
// (повторная сверка), это не ошибка.
func (s *Service) onAuthorized(ctx context.Context, payment *domain.Payment, amountAuthorized int64) {
	booking, err := s.bookingRepo.UpdateStatus(ctx, payment.BookingID,
		domain.StatusPendingPayment, domain.StatusPendingProConfirmation)
	if err != nil {
		if !errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Error("onAuthorized: failed to advance booking=%s: %v", payment.BookingID, err)
		}
		return
	}

	s.notifier.BookingStatusChanged(ctx, booking)
	s.notifier.PaymentEvent(ctx, events.RKPaymentAuthorized, events.PaymentEvent{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Status:    string(domain.PaymentAuthorized),
		Amount:    amountAuthorized,
		Currency:  s.currency,
	})
}

func (s *Service) createPreauthWithRetry(ctx context.Context, req paymentprovider.PreauthRequest) (*paymentprovider.PreauthResult, error) {
	var result *paymentprovider.PreauthResult
	err := retry.Do(ctx, s.retryPolicy.MaxAttempts, s.baseDelay(), func() error {
		var reqErr error
		result, reqErr = s.provider.CreatePreauth(ctx, req)
		return reqErr
	}, func(err error) bool {
		return errors.Is(err, paymentprovider.ErrUnavailable)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) baseDelay() time.Duration {
	return time.Duration(s.retryPolicy.BaseDelayMs) * time.Millisecond
}

// providerStatusToDomain транслирует статус провайдера во внутренний.
// Пустая строка означает неизвестный статус.
func providerStatusToDomain(status string) domain.PaymentStatus {
	switch status {
	case "created":
		return domain.PaymentCreated
	case "requires_action":
		return domain.PaymentRequiresAction
	case "authorized":
		return domain.PaymentAuthorized
	case "captured":
		return domain.PaymentCaptured
	case "failed":
		return domain.PaymentFailed
	case "cancelled":
		return domain.PaymentCancelled
	case "refunded":
		return domain.PaymentRefunded
	default:
		return ""
	}
}
