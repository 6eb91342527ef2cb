package payouts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
	payoutRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/payout"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/payoutprovider"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/prodirectory"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/payouts"
)

type mockPayoutRepo struct {
	mock.Mock
}

func (m *mockPayoutRepo) Create(ctx context.Context, p *domain.Payout) (*domain.Payout, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}

func (m *mockPayoutRepo) CreateItems(ctx context.Context, payoutID string, earnings []*domain.Earning) ([]*domain.PayoutItem, error) {
	args := m.Called(ctx, payoutID, earnings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PayoutItem), args.Error(1)
}

func (m *mockPayoutRepo) GetByID(ctx context.Context, id string) (*domain.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}

func (m *mockPayoutRepo) ListItems(ctx context.Context, payoutID string) ([]*domain.PayoutItem, error) {
	args := m.Called(ctx, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PayoutItem), args.Error(1)
}

func (m *mockPayoutRepo) UpdateStatus(ctx context.Context, id string, from, to domain.PayoutStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *mockPayoutRepo) SetProviderReference(ctx context.Context, id string, providerReference string) error {
	args := m.Called(ctx, id, providerReference)
	return args.Error(0)
}

type mockEarningRepo struct {
	mock.Mock
}

func (m *mockEarningRepo) ListPayableByPro(ctx context.Context, proProfileID string) ([]*domain.Earning, error) {
	args := m.Called(ctx, proProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Earning), args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string { return "BANK_TRANSFER" }

func (m *mockProvider) CreatePayout(ctx context.Context, req payoutprovider.CreatePayoutRequest) (*payoutprovider.CreatePayoutResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payoutprovider.CreatePayoutResult), args.Error(1)
}

func (m *mockProvider) GetStatus(ctx context.Context, providerReference string) (*payoutprovider.PayoutState, error) {
	args := m.Called(ctx, providerReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payoutprovider.PayoutState), args.Error(1)
}

type mockProDir struct {
	mock.Mock
}

func (m *mockProDir) GetPayoutProfile(ctx context.Context, proProfileID string) (*prodirectory.PayoutProfile, error) {
	args := m.Called(ctx, proProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prodirectory.PayoutProfile), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) PayoutEvent(ctx context.Context, routingKey string, event events.PayoutEvent) {
	m.Called(ctx, routingKey, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func strPtr(s string) *string { return &s }

type testEnv struct {
	payoutRepo  *mockPayoutRepo
	earningRepo *mockEarningRepo
	provider    *mockProvider
	proDir      *mockProDir
	notifier    *mockNotifier
	svc         *payouts.Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		payoutRepo:  new(mockPayoutRepo),
		earningRepo: new(mockEarningRepo),
		provider:    new(mockProvider),
		proDir:      new(mockProDir),
		notifier:    new(mockNotifier),
	}
	env.svc = payouts.NewService(
		env.payoutRepo,
		env.earningRepo,
		env.provider,
		env.proDir,
		env.notifier,
		nopLogger{},
		payouts.RetryPolicy{MaxAttempts: 3, BaseDelayMs: 1},
		"ARS",
	)
	return env
}

func proActor() domain.Actor {
	return domain.Actor{UserID: "user-9", Role: domain.RolePro, ProProfileID: strPtr("pro-1")}
}

func adminActor() domain.Actor {
	return domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
}

func completeProfile() *prodirectory.PayoutProfile {
	return &prodirectory.PayoutProfile{
		ProProfileID:      "pro-1",
		Method:            "bank_transfer",
		BankName:          "Banco Nacion",
		BankAccountNumber: "0000003100000000000001",
		FullName:          "Juan Perez",
		DocumentID:        "20-12345678-9",
		IsComplete:        true,
	}
}

func TestListPayableEarnings_SumsAmounts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.earningRepo.On("ListPayableByPro", ctx, "pro-1").Return([]*domain.Earning{
		{ID: "earn-1", Amount: 900},
		{ID: "earn-2", Amount: 1800},
	}, nil)

	earnings, total, err := env.svc.ListPayableEarnings(ctx, proActor(), "pro-1")

	assert.NoError(t, err)
	assert.Len(t, earnings, 2)
	assert.Equal(t, int64(2700), total)
}

func TestListPayableEarnings_ForeignProDenied(t *testing.T) {
	env := newTestEnv()

	other := domain.Actor{UserID: "user-8", Role: domain.RolePro, ProProfileID: strPtr("pro-2")}
	_, _, err := env.svc.ListPayableEarnings(context.Background(), other, "pro-1")

	assert.ErrorIs(t, err, payouts.ErrAccessDenied)
}

func TestListPayableEarnings_ClientDenied(t *testing.T) {
	env := newTestEnv()

	client := domain.Actor{UserID: "client-1", Role: domain.RoleClient}
	_, _, err := env.svc.ListPayableEarnings(context.Background(), client, "pro-1")

	assert.ErrorIs(t, err, payouts.ErrAccessDenied)
}

func TestClaimEarnings_CreatesPayoutWithSum(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	earnings := []*domain.Earning{
		{ID: "earn-1", ProProfileID: "pro-1", Amount: 900},
		{ID: "earn-2", ProProfileID: "pro-1", Amount: 1800},
	}
	env.earningRepo.On("ListPayableByPro", ctx, "pro-1").Return(earnings, nil)
	env.payoutRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Payout) bool {
		return p.ProProfileID == "pro-1" &&
			p.Status == domain.PayoutCreated &&
			p.Amount == 2700 &&
			p.Currency == "ARS"
	})).Return(&domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutCreated, Amount: 2700, Currency: "ARS",
	}, nil)
	env.payoutRepo.On("CreateItems", ctx, "po-1", earnings).Return([]*domain.PayoutItem{
		{ID: "item-1", PayoutID: "po-1", EarningID: "earn-1", Amount: 900},
		{ID: "item-2", PayoutID: "po-1", EarningID: "earn-2", Amount: 1800},
	}, nil)

	payout, err := env.svc.ClaimEarnings(ctx, "pro-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(2700), payout.Amount)
	env.payoutRepo.AssertExpectations(t)
}

func TestClaimEarnings_NothingToPayOut(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.earningRepo.On("ListPayableByPro", ctx, "pro-1").Return([]*domain.Earning{}, nil)

	payout, err := env.svc.ClaimEarnings(ctx, "pro-1")

	assert.ErrorIs(t, err, payouts.ErrNothingToPayOut)
	assert.Nil(t, payout)
	env.payoutRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClaimEarnings_ConcurrentClaimRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	earnings := []*domain.Earning{{ID: "earn-1", Amount: 900}}
	env.earningRepo.On("ListPayableByPro", ctx, "pro-1").Return(earnings, nil)
	env.payoutRepo.On("Create", ctx, mock.Anything).Return(&domain.Payout{
		ID: "po-1", Status: domain.PayoutCreated, Amount: 900,
	}, nil)
	env.payoutRepo.On("CreateItems", ctx, "po-1", earnings).
		Return(nil, payoutRepo.ErrEarningAlreadyClaimed)

	payout, err := env.svc.ClaimEarnings(ctx, "pro-1")

	assert.ErrorIs(t, err, payouts.ErrEarningsClaimed)
	assert.Nil(t, payout)
}

func TestSend_Success(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := &domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutCreated, Amount: 2700, Currency: "ARS",
	}
	sent := &domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutSent, Amount: 2700, Currency: "ARS",
		ProviderReference: strPtr("bt-77"),
	}
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(created, nil).Once()
	env.proDir.On("GetPayoutProfile", ctx, "pro-1").Return(completeProfile(), nil)
	env.provider.On("CreatePayout", ctx, mock.MatchedBy(func(req payoutprovider.CreatePayoutRequest) bool {
		return req.Money.Amount == 2700 &&
			req.Money.Currency == "ARS" &&
			req.Reference == "po-1" &&
			req.Destination.BankAccountNumber == "0000003100000000000001"
	})).Return(&payoutprovider.CreatePayoutResult{
		Provider:          "BANK_TRANSFER",
		ProviderReference: "bt-77",
	}, nil)
	env.payoutRepo.On("SetProviderReference", ctx, "po-1", "bt-77").Return(nil)
	env.payoutRepo.On("UpdateStatus", ctx, "po-1", domain.PayoutCreated, domain.PayoutSent).Return(nil)
	env.notifier.On("PayoutEvent", ctx, events.RKPayoutSent, mock.Anything).Return()
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(sent, nil).Once()

	payout, err := env.svc.Send(ctx, adminActor(), "po-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PayoutSent, payout.Status)
	env.payoutRepo.AssertExpectations(t)
	env.notifier.AssertExpectations(t)
}

func TestSend_AlreadySentIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sent := &domain.Payout{ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutSent}
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(sent, nil)

	payout, err := env.svc.Send(ctx, adminActor(), "po-1")

	assert.NoError(t, err)
	assert.Same(t, sent, payout)
	env.provider.AssertNotCalled(t, "CreatePayout", mock.Anything, mock.Anything)
}

func TestSend_FailedIsNotSendable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.payoutRepo.On("GetByID", ctx, "po-1").Return(&domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutFailed,
	}, nil)

	payout, err := env.svc.Send(ctx, adminActor(), "po-1")

	assert.ErrorIs(t, err, payouts.ErrPayoutNotSendable)
	assert.Nil(t, payout)
}

func TestSend_IncompleteProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.payoutRepo.On("GetByID", ctx, "po-1").Return(&domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutCreated,
	}, nil)
	profile := completeProfile()
	profile.IsComplete = false
	env.proDir.On("GetPayoutProfile", ctx, "pro-1").Return(profile, nil)

	payout, err := env.svc.Send(ctx, adminActor(), "po-1")

	assert.ErrorIs(t, err, payouts.ErrPayoutProfileIncomplete)
	assert.Nil(t, payout)
	env.provider.AssertNotCalled(t, "CreatePayout", mock.Anything, mock.Anything)
}

func TestSend_RejectedMarksFailedKeepsItems(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.payoutRepo.On("GetByID", ctx, "po-1").Return(&domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutCreated, Amount: 2700, Currency: "ARS",
	}, nil)
	env.proDir.On("GetPayoutProfile", ctx, "pro-1").Return(completeProfile(), nil)
	env.provider.On("CreatePayout", ctx, mock.Anything).Return(nil, payoutprovider.ErrRejected)
	env.payoutRepo.On("UpdateStatus", ctx, "po-1", domain.PayoutCreated, domain.PayoutFailed).Return(nil)
	env.notifier.On("PayoutEvent", ctx, events.RKPayoutFailed, mock.Anything).Return()

	payout, err := env.svc.Send(ctx, adminActor(), "po-1")

	assert.ErrorIs(t, err, payouts.ErrPayoutRejected)
	assert.Nil(t, payout)
	env.provider.AssertNumberOfCalls(t, "CreatePayout", 1)
	env.payoutRepo.AssertExpectations(t)
}

func TestSend_TransientRetriedThenSucceeds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := &domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutCreated, Amount: 2700, Currency: "ARS",
	}
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(created, nil).Once()
	env.proDir.On("GetPayoutProfile", ctx, "pro-1").Return(completeProfile(), nil)
	env.provider.On("CreatePayout", ctx, mock.Anything).Return(nil, payoutprovider.ErrUnavailable).Twice()
	env.provider.On("CreatePayout", ctx, mock.Anything).Return(&payoutprovider.CreatePayoutResult{
		Provider: "BANK_TRANSFER", ProviderReference: "bt-77",
	}, nil).Once()
	env.payoutRepo.On("SetProviderReference", ctx, "po-1", "bt-77").Return(nil)
	env.payoutRepo.On("UpdateStatus", ctx, "po-1", domain.PayoutCreated, domain.PayoutSent).Return(nil)
	env.notifier.On("PayoutEvent", ctx, events.RKPayoutSent, mock.Anything).Return()
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(&domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutSent,
	}, nil).Once()

	payout, err := env.svc.Send(ctx, adminActor(), "po-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PayoutSent, payout.Status)
	env.provider.AssertNumberOfCalls(t, "CreatePayout", 3)
}

func TestSend_NonAdminDenied(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Перевод денег выполняет только оператор платформы, исполнитель
	// не может отправить даже собственную выплату
	cases := []domain.Actor{
		{UserID: "user-9", Role: domain.RolePro, ProProfileID: strPtr("pro-1")},
		{UserID: "user-8", Role: domain.RolePro, ProProfileID: strPtr("pro-2")},
		{UserID: "client-1", Role: domain.RoleClient},
	}
	for _, actor := range cases {
		payout, err := env.svc.Send(ctx, actor, "po-1")

		assert.ErrorIs(t, err, payouts.ErrAccessDenied, "actor=%s", actor.UserID)
		assert.Nil(t, payout)
	}
	env.payoutRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	env.provider.AssertNotCalled(t, "CreatePayout", mock.Anything, mock.Anything)
}

func TestSyncStatus_SettledEmitsEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sent := &domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutSent,
		Amount: 2700, Currency: "ARS", ProviderReference: strPtr("bt-77"),
	}
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(sent, nil).Once()
	env.provider.On("GetStatus", ctx, "bt-77").Return(&payoutprovider.PayoutState{
		ProviderReference: "bt-77", Status: "settled",
	}, nil)
	env.payoutRepo.On("UpdateStatus", ctx, "po-1", domain.PayoutSent, domain.PayoutSettled).Return(nil)
	env.notifier.On("PayoutEvent", ctx, events.RKPayoutSettled, mock.MatchedBy(func(e events.PayoutEvent) bool {
		return e.PayoutID == "po-1" && e.Status == string(domain.PayoutSettled)
	})).Return()
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(&domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutSettled,
	}, nil).Once()

	payout, err := env.svc.SyncStatus(ctx, adminActor(), "po-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PayoutSettled, payout.Status)
	env.notifier.AssertExpectations(t)
}

func TestSyncStatus_FailedEmitsFailureEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sent := &domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutSent,
		Amount: 2700, Currency: "ARS", ProviderReference: strPtr("bt-77"),
	}
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(sent, nil).Once()
	env.provider.On("GetStatus", ctx, "bt-77").Return(&payoutprovider.PayoutState{
		Status: "failed",
	}, nil)
	env.payoutRepo.On("UpdateStatus", ctx, "po-1", domain.PayoutSent, domain.PayoutFailed).Return(nil)
	env.notifier.On("PayoutEvent", ctx, events.RKPayoutFailed, mock.Anything).Return()
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(&domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutFailed,
	}, nil).Once()

	payout, err := env.svc.SyncStatus(ctx, adminActor(), "po-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PayoutFailed, payout.Status)
}

func TestSyncStatus_BackwardTransitionIgnored(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	settled := &domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutSettled,
		ProviderReference: strPtr("bt-77"),
	}
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(settled, nil)
	env.provider.On("GetStatus", ctx, "bt-77").Return(&payoutprovider.PayoutState{
		Status: "sent",
	}, nil)

	payout, err := env.svc.SyncStatus(ctx, adminActor(), "po-1")

	assert.NoError(t, err)
	assert.Same(t, settled, payout)
	env.payoutRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncStatus_NoReferenceIsNoop(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created := &domain.Payout{ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutCreated}
	env.payoutRepo.On("GetByID", ctx, "po-1").Return(created, nil)

	payout, err := env.svc.SyncStatus(ctx, adminActor(), "po-1")

	assert.NoError(t, err)
	assert.Same(t, created, payout)
	env.provider.AssertNotCalled(t, "GetStatus", mock.Anything, mock.Anything)
}

func TestGetWithItems(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.payoutRepo.On("GetByID", ctx, "po-1").Return(&domain.Payout{
		ID: "po-1", ProProfileID: "pro-1", Status: domain.PayoutSent,
	}, nil)
	env.payoutRepo.On("ListItems", ctx, "po-1").Return([]*domain.PayoutItem{
		{ID: "item-1", PayoutID: "po-1", EarningID: "earn-1", Amount: 900},
	}, nil)

	payout, items, err := env.svc.GetWithItems(ctx, proActor(), "po-1")

	assert.NoError(t, err)
	assert.Equal(t, "po-1", payout.ID)
	assert.Len(t, items, 1)
}

func TestGetWithItems_NotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.payoutRepo.On("GetByID", ctx, "missing").Return(nil, payoutRepo.ErrPayoutNotFound)

	_, _, err := env.svc.GetWithItems(ctx, proActor(), "missing")

	assert.ErrorIs(t, err, payouts.ErrPayoutNotFound)
}
