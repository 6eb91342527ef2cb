package payments_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/payments"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *mockPaymentRepo) MarkAuthorized(ctx context.Context, id string, from domain.PaymentStatus, amountAuthorized int64) error {
	args := m.Called(ctx, id, from, amountAuthorized)
	return args.Error(0)
}

func (m *mockPaymentRepo) MarkCaptured(ctx context.Context, id string, amountCaptured int64) error {
	args := m.Called(ctx, id, amountCaptured)
	return args.Error(0)
}

func (m *mockPaymentRepo) SetProviderReference(ctx context.Context, id string, providerReference, checkoutURL *string) error {
	args := m.Called(ctx, id, providerReference, checkoutURL)
	return args.Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string { return "MERCADO_PAGO" }

func (m *mockProvider) CreatePreauth(ctx context.Context, req paymentprovider.PreauthRequest) (*paymentprovider.PreauthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.PreauthResult), args.Error(1)
}

func (m *mockProvider) Capture(ctx context.Context, providerReference string, amount int64) (*paymentprovider.CaptureResult, error) {
	args := m.Called(ctx, providerReference, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CaptureResult), args.Error(1)
}

func (m *mockProvider) Refund(ctx context.Context, providerReference string) error {
	args := m.Called(ctx, providerReference)
	return args.Error(0)
}

func (m *mockProvider) Void(ctx context.Context, providerReference string) error {
	args := m.Called(ctx, providerReference)
	return args.Error(0)
}

func (m *mockProvider) GetStatus(ctx context.Context, providerReference string) (*paymentprovider.PaymentState, error) {
	args := m.Called(ctx, providerReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.PaymentState), args.Error(1)
}

type mockEarnings struct {
	mock.Mock
}

func (m *mockEarnings) RecordEarning(ctx context.Context, booking *domain.Booking, payment *domain.Payment) (*domain.Earning, error) {
	args := m.Called(ctx, booking, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Earning), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BookingStatusChanged(ctx context.Context, booking *domain.Booking) {
	m.Called(ctx, booking)
}

func (m *mockNotifier) PaymentEvent(ctx context.Context, routingKey string, event events.PaymentEvent) {
	m.Called(ctx, routingKey, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func strPtr(s string) *string { return &s }

type testEnv struct {
	paymentRepo *mockPaymentRepo
	bookingRepo *mockBookingRepo
	provider    *mockProvider
	earnings    *mockEarnings
	notifier    *mockNotifier
	svc         *payments.Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		paymentRepo: new(mockPaymentRepo),
		bookingRepo: new(mockBookingRepo),
		provider:    new(mockProvider),
		earnings:    new(mockEarnings),
		notifier:    new(mockNotifier),
	}
	env.svc = payments.NewService(
		env.paymentRepo,
		env.bookingRepo,
		env.provider,
		env.earnings,
		env.notifier,
		nopLogger{},
		payments.RetryPolicy{MaxAttempts: 3, BaseDelayMs: 1},
		"ARS",
	)
	return env
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:                 "bk-1",
		ClientUserID:       "client-1",
		ProProfileID:       strPtr("pro-1"),
		Category:           domain.CategoryPlumbing,
		Status:             domain.StatusPendingPayment,
		HoursEstimate:      2,
		HourlyRateSnapshot: 5000,
	}
}

func clientActor() domain.Actor {
	return domain.Actor{UserID: "client-1", Role: domain.RoleClient}
}

func TestCreatePreauth_Success(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(nil, paymentRepo.ErrPaymentNotFound)
	env.paymentRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.BookingID == "bk-1" && p.Status == domain.PaymentCreated && p.AmountEstimated == 10000
	})).Return(&domain.Payment{
		ID:              "pay-1",
		BookingID:       "bk-1",
		Provider:        "MERCADO_PAGO",
		Status:          domain.PaymentCreated,
		AmountEstimated: 10000,
	}, nil)
	env.provider.On("CreatePreauth", ctx, mock.MatchedBy(func(req paymentprovider.PreauthRequest) bool {
		return req.Reference == "pay-1" && req.Amount == 10000 && req.Currency == "ARS"
	})).Return(&paymentprovider.PreauthResult{
		ProviderReference: "mp-42",
		CheckoutURL:       "https://pay.example/42",
		Status:            "created",
	}, nil)
	env.paymentRepo.On("SetProviderReference", ctx, "pay-1", mock.Anything, mock.Anything).Return(nil)

	payment, err := env.svc.CreatePreauthForBooking(ctx, clientActor(), "bk-1")

	assert.NoError(t, err)
	assert.Equal(t, "pay-1", payment.ID)
	assert.Equal(t, domain.PaymentCreated, payment.Status)
	assert.Equal(t, "mp-42", *payment.ProviderReference)
	env.paymentRepo.AssertExpectations(t)
	env.provider.AssertExpectations(t)
}

func TestCreatePreauth_IdempotentExistingPayment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	existing := &domain.Payment{ID: "pay-1", BookingID: "bk-1", Status: domain.PaymentAuthorized}
	env.bookingRepo.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(existing, nil)

	payment, err := env.svc.CreatePreauthForBooking(ctx, clientActor(), "bk-1")

	assert.NoError(t, err)
	assert.Same(t, existing, payment)
	env.provider.AssertNotCalled(t, "CreatePreauth", mock.Anything, mock.Anything)
}

func TestCreatePreauth_DuplicateRaceReturnsWinner(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	winner := &domain.Payment{ID: "pay-other", BookingID: "bk-1", Status: domain.PaymentCreated}
	env.bookingRepo.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(nil, paymentRepo.ErrPaymentNotFound).Once()
	env.paymentRepo.On("Create", ctx, mock.Anything).Return(nil, paymentRepo.ErrDuplicatePayment)
	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(winner, nil).Once()

	payment, err := env.svc.CreatePreauthForBooking(ctx, clientActor(), "bk-1")

	assert.NoError(t, err)
	assert.Same(t, winner, payment)
	env.provider.AssertNotCalled(t, "CreatePreauth", mock.Anything, mock.Anything)
}

func TestCreatePreauth_NotOwner(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

	stranger := domain.Actor{UserID: "client-2", Role: domain.RoleClient}
	payment, err := env.svc.CreatePreauthForBooking(ctx, stranger, "bk-1")

	assert.ErrorIs(t, err, payments.ErrAccessDenied)
	assert.Nil(t, payment)
}

func TestCreatePreauth_BookingNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, "missing").Return(nil, bookingRepo.ErrBookingNotFound)

	payment, err := env.svc.CreatePreauthForBooking(ctx, clientActor(), "missing")

	assert.ErrorIs(t, err, payments.ErrBookingNotFound)
	assert.Nil(t, payment)
}

func TestCreatePreauth_ProviderRejectedMarksFailed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(nil, paymentRepo.ErrPaymentNotFound)
	env.paymentRepo.On("Create", ctx, mock.Anything).Return(&domain.Payment{
		ID: "pay-1", BookingID: "bk-1", Status: domain.PaymentCreated, AmountEstimated: 10000,
	}, nil)
	env.provider.On("CreatePreauth", ctx, mock.Anything).Return(nil, paymentprovider.ErrRejected)
	env.paymentRepo.On("UpdateStatus", ctx, "pay-1", domain.PaymentCreated, domain.PaymentFailed).Return(nil)

	payment, err := env.svc.CreatePreauthForBooking(ctx, clientActor(), "bk-1")

	assert.ErrorIs(t, err, payments.ErrPreauthRejected)
	assert.Nil(t, payment)
	// Permanent-отказ не повторяется
	env.provider.AssertNumberOfCalls(t, "CreatePreauth", 1)
	env.paymentRepo.AssertExpectations(t)
}

func TestCreatePreauth_TransientErrorRetriedThenSucceeds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(nil, paymentRepo.ErrPaymentNotFound)
	env.paymentRepo.On("Create", ctx, mock.Anything).Return(&domain.Payment{
		ID: "pay-1", BookingID: "bk-1", Status: domain.PaymentCreated, AmountEstimated: 10000,
	}, nil)
	env.provider.On("CreatePreauth", ctx, mock.Anything).Return(nil, paymentprovider.ErrUnavailable).Twice()
	env.provider.On("CreatePreauth", ctx, mock.Anything).Return(&paymentprovider.PreauthResult{
		ProviderReference: "mp-42",
		Status:            "requires_action",
	}, nil).Once()
	env.paymentRepo.On("SetProviderReference", ctx, "pay-1", mock.Anything, mock.Anything).Return(nil)
	env.paymentRepo.On("UpdateStatus", ctx, "pay-1", domain.PaymentCreated, domain.PaymentRequiresAction).Return(nil)

	payment, err := env.svc.CreatePreauthForBooking(ctx, clientActor(), "bk-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentRequiresAction, payment.Status)
	env.provider.AssertNumberOfCalls(t, "CreatePreauth", 3)
}

func TestCreatePreauth_ProviderUnavailableAfterBudget(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.bookingRepo.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(nil, paymentRepo.ErrPaymentNotFound)
	env.paymentRepo.On("Create", ctx, mock.Anything).Return(&domain.Payment{
		ID: "pay-1", BookingID: "bk-1", Status: domain.PaymentCreated, AmountEstimated: 10000,
	}, nil)
	env.provider.On("CreatePreauth", ctx, mock.Anything).Return(nil, paymentprovider.ErrUnavailable)

	payment, err := env.svc.CreatePreauthForBooking(ctx, clientActor(), "bk-1")

	assert.ErrorIs(t, err, payments.ErrProviderUnavailable)
	assert.Nil(t, payment)
	env.provider.AssertNumberOfCalls(t, "CreatePreauth", 3)
}

func TestCaptureOnCompletion_Success(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	booking := pendingBooking()
	booking.Status = domain.StatusCompleted

	authorized := &domain.Payment{
		ID:                "pay-1",
		BookingID:         "bk-1",
		Status:            domain.PaymentAuthorized,
		AmountAuthorized:  10000,
		ProviderReference: strPtr("mp-42"),
	}
	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(authorized, nil)
	env.provider.On("Capture", ctx, "mp-42", int64(10000)).
		Return(&paymentprovider.CaptureResult{AmountCaptured: 10000}, nil)
	env.paymentRepo.On("MarkCaptured", ctx, "pay-1", int64(10000)).Return(nil)
	env.earnings.On("RecordEarning", ctx, booking, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentCaptured && p.AmountCaptured == 10000
	})).Return(&domain.Earning{ID: "earn-1", Amount: 9000}, nil)
	env.notifier.On("PaymentEvent", ctx, events.RKPaymentCaptured, mock.Anything).Return()

	err := env.svc.CaptureOnCompletion(ctx, booking)

	assert.NoError(t, err)
	env.paymentRepo.AssertExpectations(t)
	env.earnings.AssertExpectations(t)
	env.notifier.AssertExpectations(t)
}

func TestCaptureOnCompletion_AlreadyCapturedIsNoop(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	booking := pendingBooking()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(&domain.Payment{
		ID: "pay-1", Status: domain.PaymentCaptured,
	}, nil)

	err := env.svc.CaptureOnCompletion(ctx, booking)

	assert.NoError(t, err)
	env.provider.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything)
}

func TestCaptureOnCompletion_NotAuthorized(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(&domain.Payment{
		ID: "pay-1", Status: domain.PaymentCreated,
	}, nil)

	err := env.svc.CaptureOnCompletion(ctx, pendingBooking())

	assert.ErrorIs(t, err, payments.ErrPaymentNotAuthorized)
}

func TestCaptureOnCompletion_RejectedMarksFailedAndNotifies(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	booking := pendingBooking()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(&domain.Payment{
		ID:                "pay-1",
		BookingID:         "bk-1",
		Status:            domain.PaymentAuthorized,
		AmountAuthorized:  10000,
		ProviderReference: strPtr("mp-42"),
	}, nil)
	env.provider.On("Capture", ctx, "mp-42", int64(10000)).Return(nil, paymentprovider.ErrRejected)
	env.paymentRepo.On("UpdateStatus", ctx, "pay-1", domain.PaymentAuthorized, domain.PaymentFailed).Return(nil)
	env.notifier.On("PaymentEvent", ctx, events.RKPaymentFailed, mock.Anything).Return()

	err := env.svc.CaptureOnCompletion(ctx, booking)

	assert.ErrorIs(t, err, payments.ErrCaptureFailed)
	env.provider.AssertNumberOfCalls(t, "Capture", 1)
	env.paymentRepo.AssertExpectations(t)
	env.notifier.AssertExpectations(t)
}

func TestCaptureOnCompletion_EarningFailureDoesNotFailCapture(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	booking := pendingBooking()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(&domain.Payment{
		ID:                "pay-1",
		BookingID:         "bk-1",
		Status:            domain.PaymentAuthorized,
		AmountAuthorized:  10000,
		ProviderReference: strPtr("mp-42"),
	}, nil)
	env.provider.On("Capture", ctx, "mp-42", int64(10000)).
		Return(&paymentprovider.CaptureResult{AmountCaptured: 10000}, nil)
	env.paymentRepo.On("MarkCaptured", ctx, "pay-1", int64(10000)).Return(nil)
	env.earnings.On("RecordEarning", ctx, booking, mock.Anything).
		Return(nil, payments.ErrInternal)
	env.notifier.On("PaymentEvent", ctx, events.RKPaymentCaptured, mock.Anything).Return()

	err := env.svc.CaptureOnCompletion(ctx, booking)

	assert.NoError(t, err)
}

func TestRefundOnCancellation_NoPaymentIsNoop(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(nil, paymentRepo.ErrPaymentNotFound)

	err := env.svc.RefundOnCancellation(ctx, pendingBooking())

	assert.NoError(t, err)
	env.provider.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestRefundOnCancellation_CapturedIsRefunded(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(&domain.Payment{
		ID:                "pay-1",
		BookingID:         "bk-1",
		Status:            domain.PaymentCaptured,
		AmountCaptured:    10000,
		ProviderReference: strPtr("mp-42"),
	}, nil)
	env.provider.On("Refund", ctx, "mp-42").Return(nil)
	env.paymentRepo.On("UpdateStatus", ctx, "pay-1", domain.PaymentCaptured, domain.PaymentRefunded).Return(nil)
	env.notifier.On("PaymentEvent", ctx, events.RKPaymentRefunded, mock.Anything).Return()

	err := env.svc.RefundOnCancellation(ctx, pendingBooking())

	assert.NoError(t, err)
	env.paymentRepo.AssertExpectations(t)
}

func TestRefundOnCancellation_AuthorizedIsVoided(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(&domain.Payment{
		ID:                "pay-1",
		BookingID:         "bk-1",
		Status:            domain.PaymentAuthorized,
		AmountAuthorized:  10000,
		ProviderReference: strPtr("mp-42"),
	}, nil)
	env.provider.On("Void", ctx, "mp-42").Return(nil)
	env.paymentRepo.On("UpdateStatus", ctx, "pay-1", domain.PaymentAuthorized, domain.PaymentCancelled).Return(nil)
	env.notifier.On("PaymentEvent", ctx, events.RKPaymentRefunded, mock.Anything).Return()

	err := env.svc.RefundOnCancellation(ctx, pendingBooking())

	assert.NoError(t, err)
	env.provider.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestRefundOnCancellation_CreatedCancelledLocally(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(&domain.Payment{
		ID: "pay-1", BookingID: "bk-1", Status: domain.PaymentCreated,
	}, nil)
	env.paymentRepo.On("UpdateStatus", ctx, "pay-1", domain.PaymentCreated, domain.PaymentCancelled).Return(nil)

	err := env.svc.RefundOnCancellation(ctx, pendingBooking())

	assert.NoError(t, err)
	env.provider.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	env.provider.AssertNotCalled(t, "Void", mock.Anything, mock.Anything)
}

func TestRefundOnCancellation_AlreadyReleasedIsNoop(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.paymentRepo.On("GetByBookingID", ctx, "bk-1").Return(&domain.Payment{
		ID: "pay-1", Status: domain.PaymentRefunded,
	}, nil)

	err := env.svc.RefundOnCancellation(ctx, pendingBooking())

	assert.NoError(t, err)
}

func TestSyncStatus_AuthorizedAdvancesBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := &domain.Payment{
		ID:                "pay-1",
		BookingID:         "bk-1",
		Status:            domain.PaymentCreated,
		ProviderReference: strPtr("mp-42"),
	}
	env.paymentRepo.On("GetByID", ctx, "pay-1").Return(created, nil).Once()
	env.provider.On("GetStatus", ctx, "mp-42").Return(&paymentprovider.PaymentState{
		ProviderReference: "mp-42",
		Status:            "authorized",
		AmountAuthorized:  10000,
	}, nil)
	env.paymentRepo.On("MarkAuthorized", ctx, "pay-1", domain.PaymentCreated, int64(10000)).Return(nil)

	advanced := pendingBooking()
	advanced.Status = domain.StatusPendingProConfirmation
	env.bookingRepo.On("UpdateStatus", ctx, "bk-1",
		domain.StatusPendingPayment, domain.StatusPendingProConfirmation).Return(advanced, nil)
	env.notifier.On("BookingStatusChanged", ctx, advanced).Return()
	env.notifier.On("PaymentEvent", ctx, events.RKPaymentAuthorized, mock.Anything).Return()

	updated := &domain.Payment{
		ID: "pay-1", BookingID: "bk-1", Status: domain.PaymentAuthorized, AmountAuthorized: 10000,
	}
	env.paymentRepo.On("GetByID", ctx, "pay-1").Return(updated, nil).Once()

	payment, err := env.svc.SyncStatus(ctx, "pay-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentAuthorized, payment.Status)
	env.notifier.AssertExpectations(t)
}

func TestSyncStatus_BookingAlreadyAdvancedIsTolerated(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := &domain.Payment{
		ID:                "pay-1",
		BookingID:         "bk-1",
		Status:            domain.PaymentCreated,
		ProviderReference: strPtr("mp-42"),
	}
	env.paymentRepo.On("GetByID", ctx, "pay-1").Return(created, nil).Once()
	env.provider.On("GetStatus", ctx, "mp-42").Return(&paymentprovider.PaymentState{
		Status: "authorized", AmountAuthorized: 10000,
	}, nil)
	env.paymentRepo.On("MarkAuthorized", ctx, "pay-1", domain.PaymentCreated, int64(10000)).Return(nil)
	env.bookingRepo.On("UpdateStatus", ctx, "bk-1",
		domain.StatusPendingPayment, domain.StatusPendingProConfirmation).
		Return(nil, bookingRepo.ErrStatusConflict)
	env.paymentRepo.On("GetByID", ctx, "pay-1").Return(&domain.Payment{
		ID: "pay-1", Status: domain.PaymentAuthorized,
	}, nil).Once()

	payment, err := env.svc.SyncStatus(ctx, "pay-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentAuthorized, payment.Status)
	env.notifier.AssertNotCalled(t, "BookingStatusChanged", mock.Anything, mock.Anything)
}

func TestSyncStatus_SameStatusIsNoop(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	authorized := &domain.Payment{
		ID: "pay-1", Status: domain.PaymentAuthorized, ProviderReference: strPtr("mp-42"),
	}
	env.paymentRepo.On("GetByID", ctx, "pay-1").Return(authorized, nil)
	env.provider.On("GetStatus", ctx, "mp-42").Return(&paymentprovider.PaymentState{
		Status: "authorized",
	}, nil)

	payment, err := env.svc.SyncStatus(ctx, "pay-1")

	assert.NoError(t, err)
	assert.Same(t, authorized, payment)
	env.paymentRepo.AssertNotCalled(t, "MarkAuthorized", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncStatus_DisallowedTransitionIgnored(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	captured := &domain.Payment{
		ID: "pay-1", Status: domain.PaymentCaptured, ProviderReference: strPtr("mp-42"),
	}
	env.paymentRepo.On("GetByID", ctx, "pay-1").Return(captured, nil)
	// Провайдер внезапно сообщает created, откат запрещён
	env.provider.On("GetStatus", ctx, "mp-42").Return(&paymentprovider.PaymentState{
		Status: "created",
	}, nil)

	payment, err := env.svc.SyncStatus(ctx, "pay-1")

	assert.NoError(t, err)
	assert.Same(t, captured, payment)
	env.paymentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncStatus_UnknownProviderStatusIgnored(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := &domain.Payment{
		ID: "pay-1", Status: domain.PaymentCreated, ProviderReference: strPtr("mp-42"),
	}
	env.paymentRepo.On("GetByID", ctx, "pay-1").Return(created, nil)
	env.provider.On("GetStatus", ctx, "mp-42").Return(&paymentprovider.PaymentState{
		Status: "on_hold",
	}, nil)

	payment, err := env.svc.SyncStatus(ctx, "pay-1")

	assert.NoError(t, err)
	assert.Same(t, created, payment)
}

func TestSyncStatus_NoProviderReferenceIsNoop(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := &domain.Payment{ID: "pay-1", Status: domain.PaymentCreated}
	env.paymentRepo.On("GetByID", ctx, "pay-1").Return(created, nil)

	payment, err := env.svc.SyncStatus(ctx, "pay-1")

	assert.NoError(t, err)
	assert.Same(t, created, payment)
	env.provider.AssertNotCalled(t, "GetStatus", mock.Anything, mock.Anything)
}

func TestSyncStatus_PaymentNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.paymentRepo.On("GetByID", ctx, "missing").Return(nil, paymentRepo.ErrPaymentNotFound)

	payment, err := env.svc.SyncStatus(ctx, "missing")

	assert.ErrorIs(t, err, payments.ErrPaymentNotFound)
	assert.Nil(t, payment)
}
