package payouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
	payoutRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/payout"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/payoutprovider"
	"github.com/m04kA/SMC-MarketplaceService/pkg/retry"
)

// Service агрегатор выплат. Собирает невыплаченные заработки исполнителя
// в пакетную выплату и ведёт её по статусам CREATED -> SENT -> SETTLED.
// Заработок входит не более чем в одну выплату за всё время.
type Service struct {
	payoutRepo  PayoutRepository
	earningRepo EarningRepository
	provider    ProviderClient
	proDir      ProDirectoryClient
	notifier    Notifier
	logger      Logger

	retryPolicy RetryPolicy
	currency    string
}

// NewService создает новый агрегатор выплат
func NewService(
	payoutRepo PayoutRepository,
	earningRepo EarningRepository,
	provider ProviderClient,
	proDir ProDirectoryClient,
	notifier Notifier,
	logger Logger,
	retryPolicy RetryPolicy,
	currency string,
) *Service {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &Service{
		payoutRepo:  payoutRepo,
		earningRepo: earningRepo,
		provider:    provider,
		proDir:      proDir,
		notifier:    notifier,
		logger:      logger,
		retryPolicy: retryPolicy,
		currency:    currency,
	}
}

// ListPayableEarnings возвращает заработки исполнителя, ещё не включённые
// ни в одну выплату, и их сумму
func (s *Service) ListPayableEarnings(ctx context.Context, actor domain.Actor, proProfileID string) ([]*domain.Earning, int64, error) {
	if !s.canAccessPro(actor, proProfileID) {
		return nil, 0, ErrAccessDenied
	}

	earnings, err := s.earningRepo.ListPayableByPro(ctx, proProfileID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListPayableEarnings - list earnings: %v", ErrInternal, err)
	}

	var total int64
	for _, e := range earnings {
		total += e.Amount
	}

	return earnings, total, nil
}

// ClaimEarnings атомарно забирает все невыплаченные заработки исполнителя
// в новую выплату в статусе CREATED. Должна вызываться внутри транзакции:
// заработки блокируются FOR UPDATE, уникальный индекс на earning_id в
// payout_items отсекает конкурентные агрегации.
func (s *Service) ClaimEarnings(ctx context.Context, proProfileID string) (*domain.Payout, error) {
	earnings, err := s.earningRepo.ListPayableByPro(ctx, proProfileID)
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimEarnings - list earnings: %v", ErrInternal, err)
	}
	if len(earnings) == 0 {
		return nil, ErrNothingToPayOut
	}

	var total int64
	for _, e := range earnings {
		total += e.Amount
	}

	payout := &domain.Payout{
		ProProfileID: proProfileID,
		Provider:     s.provider.Name(),
		Status:       domain.PayoutCreated,
		Currency:     s.currency,
		Amount:       total,
	}

	payout, err = s.payoutRepo.Create(ctx, payout)
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimEarnings - create payout: %v", ErrInternal, err)
	}

	if _, err := s.payoutRepo.CreateItems(ctx, payout.ID, earnings); err != nil {
		if errors.Is(err, payoutRepo.ErrEarningAlreadyClaimed) {
			return nil, ErrEarningsClaimed
		}
		return nil, fmt.Errorf("%w: ClaimEarnings - create items: %v", ErrInternal, err)
	}

	s.logger.Info("ClaimEarnings: payout=%s pro=%s earnings=%d amount=%d",
		payout.ID, proProfileID, len(earnings), total)

	return payout, nil
}

// Send отправляет выплату провайдеру. Доступна только оператору
// платформы. Идемпотентна: уже отправленная выплата возвращается как
// есть, второй перевод не создается. Permanent-отказ провайдера
// переводит выплату в FAILED.
func (s *Service) Send(ctx context.Context, actor domain.Actor, payoutID string) (*domain.Payout, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrAccessDenied
	}

	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, payoutRepo.ErrPayoutNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("%w: Send - get payout: %v", ErrInternal, err)
	}

	switch payout.Status {
	case domain.PayoutCreated:
		// продолжаем отправку
	case domain.PayoutSent, domain.PayoutSettled:
		s.logger.Info("Send: payout=%s already sent, status=%s", payoutID, payout.Status)
		return payout, nil
	default:
		s.logger.Warn("Send: payout=%s is not sendable, status=%s", payoutID, payout.Status)
		return nil, ErrPayoutNotSendable
	}

	profile, err := s.proDir.GetPayoutProfile(ctx, payout.ProProfileID)
	if err != nil {
		return nil, fmt.Errorf("%w: Send - get payout profile: %v", ErrInternal, err)
	}
	if !profile.IsComplete {
		s.logger.Warn("Send: payout profile for pro=%s is incomplete", payout.ProProfileID)
		return nil, ErrPayoutProfileIncomplete
	}

	var result *payoutprovider.CreatePayoutResult
	err = retry.Do(ctx, s.retryPolicy.MaxAttempts, s.baseDelay(), func() error {
		var sendErr error
		result, sendErr = s.provider.CreatePayout(ctx, payoutprovider.CreatePayoutRequest{
			Money: payoutprovider.Money{
				Amount:   payout.Amount,
				Currency: payout.Currency,
			},
			Destination: payoutprovider.Destination{
				Method:            profile.Method,
				BankName:          profile.BankName,
				BankAccountNumber: profile.BankAccountNumber,
				FullName:          profile.FullName,
				DocumentID:        profile.DocumentID,
			},
			Reference: payout.ID,
		})
		return sendErr
	}, func(err error) bool {
		return errors.Is(err, payoutprovider.ErrUnavailable)
	})

	if err != nil {
		if errors.Is(err, payoutprovider.ErrRejected) {
			s.logger.Error("Send: provider rejected payout=%s: %v", payoutID, err)
			s.markFailed(ctx, payout, domain.PayoutCreated)
			return nil, fmt.Errorf("%w: %v", ErrPayoutRejected, err)
		}
		s.logger.Error("Send: provider unavailable for payout=%s after %d attempts: %v",
			payoutID, s.retryPolicy.MaxAttempts, err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if err := s.payoutRepo.SetProviderReference(ctx, payout.ID, result.ProviderReference); err != nil {
		return nil, fmt.Errorf("%w: Send - save provider reference: %v", ErrInternal, err)
	}

	if err := s.payoutRepo.UpdateStatus(ctx, payout.ID, domain.PayoutCreated, domain.PayoutSent); err != nil {
		if errors.Is(err, payoutRepo.ErrStatusConflict) {
			// Параллельная отправка успела первой, перевод у провайдера
			// идемпотентен по reference
			return s.payoutRepo.GetByID(ctx, payout.ID)
		}
		return nil, fmt.Errorf("%w: Send - update status: %v", ErrInternal, err)
	}

	s.notifier.PayoutEvent(ctx, events.RKPayoutSent, events.PayoutEvent{
		PayoutID:     payout.ID,
		ProProfileID: payout.ProProfileID,
		Status:       string(domain.PayoutSent),
		Amount:       payout.Amount,
		Currency:     payout.Currency,
	})

	s.logger.Info("Send: payout=%s sent via %s, reference=%s", payout.ID, result.Provider, result.ProviderReference)

	return s.payoutRepo.GetByID(ctx, payout.ID)
}

// SyncStatus сверяет выплату с провайдером и подтягивает локальный статус.
// Источник истины - провайдер.
func (s *Service) SyncStatus(ctx context.Context, actor domain.Actor, payoutID string) (*domain.Payout, error) {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, payoutRepo.ErrPayoutNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("%w: SyncStatus - get payout: %v", ErrInternal, err)
	}

	if !s.canAccessPro(actor, payout.ProProfileID) {
		return nil, ErrAccessDenied
	}

	if payout.ProviderReference == nil {
		s.logger.Warn("SyncStatus: payout=%s has no provider reference, nothing to sync", payoutID)
		return payout, nil
	}

	var state *payoutprovider.PayoutState
	err = retry.Do(ctx, s.retryPolicy.MaxAttempts, s.baseDelay(), func() error {
		var stateErr error
		state, stateErr = s.provider.GetStatus(ctx, *payout.ProviderReference)
		return stateErr
	}, func(err error) bool {
		return errors.Is(err, payoutprovider.ErrUnavailable)
	})
	if err != nil {
		s.logger.Error("SyncStatus: provider status fetch failed for payout=%s: %v", payoutID, err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	target := providerStatusToDomain(state.Status)
	if target == "" {
		s.logger.Warn("SyncStatus: unknown provider status=%q for payout=%s", state.Status, payoutID)
		return payout, nil
	}

	if target == payout.Status {
		return payout, nil
	}

	if !domain.CanTransitionPayout(payout.Status, target) {
		s.logger.Warn("SyncStatus: provider reports %s but local transition %s -> %s is not allowed, payout=%s",
			state.Status, payout.Status, target, payoutID)
		return payout, nil
	}

	if err := s.payoutRepo.UpdateStatus(ctx, payout.ID, payout.Status, target); err != nil {
		if !errors.Is(err, payoutRepo.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: SyncStatus - update status: %v", ErrInternal, err)
		}
	} else {
		routingKey := events.RKPayoutSettled
		if target == domain.PayoutFailed {
			routingKey = events.RKPayoutFailed
		}
		s.notifier.PayoutEvent(ctx, routingKey, events.PayoutEvent{
			PayoutID:     payout.ID,
			ProProfileID: payout.ProProfileID,
			Status:       string(target),
			Amount:       payout.Amount,
			Currency:     payout.Currency,
		})
	}

	updated, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, fmt.Errorf("%w: SyncStatus - reread payout: %v", ErrInternal, err)
	}

	s.logger.Info("SyncStatus: payout=%s moved %s -> %s", payoutID, payout.Status, updated.Status)

	return updated, nil
}

// GetWithItems возвращает выплату и её позиции
func (s *Service) GetWithItems(ctx context.Context, actor domain.Actor, payoutID string) (*domain.Payout, []*domain.PayoutItem, error) {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, payoutRepo.ErrPayoutNotFound) {
			return nil, nil, ErrPayoutNotFound
		}
		return nil, nil, fmt.Errorf("%w: GetWithItems - get payout: %v", ErrInternal, err)
	}

	if !s.canAccessPro(actor, payout.ProProfileID) {
		return nil, nil, ErrAccessDenied
	}

	items, err := s.payoutRepo.ListItems(ctx, payoutID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetWithItems - list items: %v", ErrInternal, err)
	}

	return payout, items, nil
}

// markFailed переводит выплату в FAILED. Позиции остаются привязанными:
// повторная отправка делается по той же выплате вручную оператором,
// заработки обратно в пул не возвращаются.
func (s *Service) markFailed(ctx context.Context, payout *domain.Payout, from domain.PayoutStatus) {
	if err := s.payoutRepo.UpdateStatus(ctx, payout.ID, from, domain.PayoutFailed); err != nil {
		s.logger.Error("markFailed: failed to mark payout=%s FAILED: %v", payout.ID, err)
		return
	}
	s.notifier.PayoutEvent(ctx, events.RKPayoutFailed, events.PayoutEvent{
		PayoutID:     payout.ID,
		ProProfileID: payout.ProProfileID,
		Status:       string(domain.PayoutFailed),
		Amount:       payout.Amount,
		Currency:     payout.Currency,
	})
}

func (s *Service) canAccessPro(actor domain.Actor, proProfileID string) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.Role == domain.RolePro &&
		actor.ProProfileID != nil &&
		*actor.ProProfileID == proProfileID
}

func (s *Service) baseDelay() time.Duration {
	return time.Duration(s.retryPolicy.BaseDelayMs) * time.Millisecond
}

// providerStatusToDomain транслирует статус провайдера во внутренний.
// Пустая строка означает неизвестный статус.
func providerStatusToDomain(status string) domain.PayoutStatus {
	switch status {
	case "created":
		return domain.PayoutCreated
	case "sent":
		return domain.PayoutSent
	case "settled":
		return domain.PayoutSettled
	case "failed":
		return domain.PayoutFailed
	default:
		return ""
	}
}
