package earnings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	earningRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/earning"
)

// Service леджер заработков исполнителей.
// Заработок записывается ровно один раз на бронирование и после этого
// неизменяем; повторная запись - ошибка, а не тихий дубликат.
type Service struct {
	earningRepo EarningRepository
	bookingRepo BookingRepository
	fees        FeeCalculator
	logger      Logger
}

// NewService создает новый экземпляр леджера заработков
func NewService(
	earningRepo EarningRepository,
	bookingRepo BookingRepository,
	fees FeeCalculator,
	logger Logger,
) *Service {
	return &Service{
		earningRepo: earningRepo,
		bookingRepo: bookingRepo,
		fees:        fees,
		logger:      logger,
	}
}

// RecordEarning записывает заработок исполнителя по завершённому,
// списанному бронированию. Сумма = списанная сумма минус комиссия платформы.
func (s *Service) RecordEarning(ctx context.Context, booking *domain.Booking, payment *domain.Payment) (*domain.Earning, error) {
	s.logger.Info("RecordEarning: booking=%s payment=%s", booking.ID, payment.ID)

	if payment.Status != domain.PaymentCaptured {
		s.logger.Warn("RecordEarning: payment=%s not captured, status=%s", payment.ID, payment.Status)
		return nil, ErrPaymentNotCaptured
	}
	if booking.ProProfileID == nil {
		s.logger.Warn("RecordEarning: booking=%s has no assigned pro", booking.ID)
		return nil, ErrNoProAssigned
	}

	fee := s.fees.Fee(payment.AmountCaptured, booking.Category)
	amount := payment.AmountCaptured - fee

	earning := &domain.Earning{
		BookingID:    booking.ID,
		ProProfileID: *booking.ProProfileID,
		Amount:       amount,
	}

	created, err := s.earningRepo.Create(ctx, earning)
	if err != nil {
		if errors.Is(err, earningRepo.ErrDuplicateEarning) {
			s.logger.Warn("RecordEarning: earning already exists for booking=%s", booking.ID)
			return nil, ErrEarningExists
		}
		s.logger.Error("RecordEarning: repository error for booking=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: RecordEarning - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordEarning: recorded earning=%s pro=%s amount=%d (captured=%d fee=%d)",
		created.ID, created.ProProfileID, created.Amount, payment.AmountCaptured, fee)

	return created, nil
}

// GetProStats возвращает производную статистику профиля исполнителя
func (s *Service) GetProStats(ctx context.Context, proProfileID string) (*domain.ProStats, error) {
	completed, err := s.bookingRepo.CountCompletedByPro(ctx, proProfileID)
	if err != nil {
		s.logger.Error("GetProStats: repository error for pro=%s: %v", proProfileID, err)
		return nil, fmt.Errorf("%w: GetProStats - repository error: %v", ErrInternal, err)
	}

	return &domain.ProStats{
		ProProfileID:        proProfileID,
		CompletedJobsCount:  completed,
		IsTopPro:            domain.CalculateIsTopPro(completed),
		ResponseTimeMinutes: domain.CalculateResponseTimeMinutes(),
	}, nil
}
