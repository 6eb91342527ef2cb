package earnings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	earningRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/earning"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/earnings"
)

type mockEarningRepo struct {
	mock.Mock
}

func (m *mockEarningRepo) Create(ctx context.Context, earning *domain.Earning) (*domain.Earning, error) {
	args := m.Called(ctx, earning)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Earning), args.Error(1)
}

func (m *mockEarningRepo) GetByBookingID(ctx context.Context, bookingID string) (*domain.Earning, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Earning), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CountCompletedByPro(ctx context.Context, proProfileID string) (int, error) {
	args := m.Called(ctx, proProfileID)
	return args.Int(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func strPtr(s string) *string { return &s }

func capturedPayment(amount int64) *domain.Payment {
	return &domain.Payment{
		ID:             "pay-1",
		BookingID:      "bk-1",
		Status:         domain.PaymentCaptured,
		AmountCaptured: amount,
	}
}

func completedBooking() *domain.Booking {
	return &domain.Booking{
		ID:           "bk-1",
		ClientUserID: "client-1",
		ProProfileID: strPtr("pro-1"),
		Category:     domain.CategoryCleaning,
		Status:       domain.StatusCompleted,
	}
}

func TestRecordEarning_FeeMinus(t *testing.T) {
	repo := new(mockEarningRepo)
	bookings := new(mockBookingRepo)
	fees := earnings.NewPercentFeeCalculator(1000, nil)
	svc := earnings.NewService(repo, bookings, fees, nopLogger{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Earning) bool {
		return e.BookingID == "bk-1" && e.ProProfileID == "pro-1" && e.Amount == 900
	})).Return(&domain.Earning{ID: "earn-1", BookingID: "bk-1", ProProfileID: "pro-1", Amount: 900}, nil)

	earning, err := svc.RecordEarning(context.Background(), completedBooking(), capturedPayment(1000))

	assert.NoError(t, err)
	assert.Equal(t, int64(900), earning.Amount)
	repo.AssertExpectations(t)
}

func TestRecordEarning_CategoryFeeOverride(t *testing.T) {
	repo := new(mockEarningRepo)
	bookings := new(mockBookingRepo)
	fees := earnings.NewPercentFeeCalculator(1000, map[domain.ServiceCategory]int64{
		domain.CategoryCleaning: 2000,
	})
	svc := earnings.NewService(repo, bookings, fees, nopLogger{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Earning) bool {
		return e.Amount == 8000
	})).Return(&domain.Earning{ID: "earn-1", Amount: 8000}, nil)

	earning, err := svc.RecordEarning(context.Background(), completedBooking(), capturedPayment(10000))

	assert.NoError(t, err)
	assert.Equal(t, int64(8000), earning.Amount)
}

func TestRecordEarning_PaymentNotCaptured(t *testing.T) {
	svc := earnings.NewService(new(mockEarningRepo), new(mockBookingRepo),
		earnings.NewPercentFeeCalculator(1000, nil), nopLogger{})

	payment := capturedPayment(1000)
	payment.Status = domain.PaymentAuthorized

	earning, err := svc.RecordEarning(context.Background(), completedBooking(), payment)

	assert.ErrorIs(t, err, earnings.ErrPaymentNotCaptured)
	assert.Nil(t, earning)
}

func TestRecordEarning_NoProAssigned(t *testing.T) {
	svc := earnings.NewService(new(mockEarningRepo), new(mockBookingRepo),
		earnings.NewPercentFeeCalculator(1000, nil), nopLogger{})

	booking := completedBooking()
	booking.ProProfileID = nil

	earning, err := svc.RecordEarning(context.Background(), booking, capturedPayment(1000))

	assert.ErrorIs(t, err, earnings.ErrNoProAssigned)
	assert.Nil(t, earning)
}

func TestRecordEarning_DuplicateRejected(t *testing.T) {
	repo := new(mockEarningRepo)
	svc := earnings.NewService(repo, new(mockBookingRepo),
		earnings.NewPercentFeeCalculator(1000, nil), nopLogger{})

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, earningRepo.ErrDuplicateEarning)

	earning, err := svc.RecordEarning(context.Background(), completedBooking(), capturedPayment(1000))

	assert.ErrorIs(t, err, earnings.ErrEarningExists)
	assert.Nil(t, earning)
}

func TestRecordEarning_RepositoryError(t *testing.T) {
	repo := new(mockEarningRepo)
	svc := earnings.NewService(repo, new(mockBookingRepo),
		earnings.NewPercentFeeCalculator(1000, nil), nopLogger{})

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	earning, err := svc.RecordEarning(context.Background(), completedBooking(), capturedPayment(1000))

	assert.ErrorIs(t, err, earnings.ErrInternal)
	assert.Nil(t, earning)
}

func TestGetProStats(t *testing.T) {
	bookings := new(mockBookingRepo)
	svc := earnings.NewService(new(mockEarningRepo), bookings,
		earnings.NewPercentFeeCalculator(1000, nil), nopLogger{})

	bookings.On("CountCompletedByPro", mock.Anything, "pro-1").Return(12, nil)

	stats, err := svc.GetProStats(context.Background(), "pro-1")

	assert.NoError(t, err)
	assert.Equal(t, 12, stats.CompletedJobsCount)
	assert.True(t, stats.IsTopPro)
	assert.Nil(t, stats.ResponseTimeMinutes)
}

func TestGetProStats_BelowThreshold(t *testing.T) {
	bookings := new(mockBookingRepo)
	svc := earnings.NewService(new(mockEarningRepo), bookings,
		earnings.NewPercentFeeCalculator(1000, nil), nopLogger{})

	bookings.On("CountCompletedByPro", mock.Anything, "pro-2").Return(3, nil)

	stats, err := svc.GetProStats(context.Background(), "pro-2")

	assert.NoError(t, err)
	assert.False(t, stats.IsTopPro)
}

func TestPercentFeeCalculator_Rounding(t *testing.T) {
	fees := earnings.NewPercentFeeCalculator(1000, nil)

	// Целочисленное деление, остаток в пользу исполнителя
	assert.Equal(t, int64(0), fees.Fee(9, domain.CategoryOther))
	assert.Equal(t, int64(1), fees.Fee(10, domain.CategoryOther))
	assert.Equal(t, int64(99), fees.Fee(999, domain.CategoryOther))
}
