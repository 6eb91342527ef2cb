package create_payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/payouts"
)

// UseCase use case сборки выплаты исполнителю.
// Redis-блокировка по профилю отсекает конкурентные агрегации до БД,
// сериализуемая транзакция и уникальный индекс на earning_id в
// payout_items гарантируют отсутствие двойных выплат даже без неё.
type UseCase struct {
	aggregator PayoutAggregator
	locker     Locker
	notifier   Notifier
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	aggregator PayoutAggregator,
	locker Locker,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		aggregator: aggregator,
		locker:     locker,
		notifier:   notifier,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute собирает все невыплаченные заработки исполнителя в одну выплату
// и сразу пытается отправить её провайдеру. Сбой отправки не отменяет
// созданную выплату: она остаётся в CREATED (или FAILED при явном отказе)
// и доотправляется отдельной операцией.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePayout: pro=%s actor=%s role=%s", req.ProProfileID, req.Actor.UserID, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePayout: validation failed: %v", err)
		return nil, err
	}

	if !canAggregate(req.Actor) {
		uc.logger.Warn("CreatePayout: actor=%s role=%s denied for pro=%s", req.Actor.UserID, req.Actor.Role, req.ProProfileID)
		return nil, ErrAccessDenied
	}

	lockKey := lockKeyForPro(req.ProProfileID)
	acquired, err := uc.locker.Acquire(ctx, lockKey)
	if err != nil {
		uc.logger.Error("CreatePayout: failed to acquire lock %s: %v", lockKey, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	if !acquired {
		uc.logger.Warn("CreatePayout: aggregation already in progress for pro=%s", req.ProProfileID)
		return nil, ErrPayoutInProgress
	}
	defer func() {
		if err := uc.locker.Release(ctx, lockKey); err != nil {
			uc.logger.Error("CreatePayout: failed to release lock %s: %v", lockKey, err)
		}
	}()

	var payout *domain.Payout

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		claimed, err := uc.aggregator.ClaimEarnings(txCtx, req.ProProfileID)
		if err != nil {
			return err
		}
		payout = claimed
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, payouts.ErrNothingToPayOut):
			return nil, ErrNothingToPayOut
		case errors.Is(err, payouts.ErrEarningsClaimed):
			// Конкурентная агрегация успела первой
			return nil, ErrPayoutInProgress
		default:
			uc.logger.Error("CreatePayout: claim failed for pro=%s: %v", req.ProProfileID, err)
			return nil, fmt.Errorf("%w: claim failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreatePayout: created payout=%s pro=%s amount=%d", payout.ID, payout.ProProfileID, payout.Amount)

	uc.notifier.PayoutEvent(ctx, events.RKPayoutCreated, events.PayoutEvent{
		PayoutID:     payout.ID,
		ProProfileID: payout.ProProfileID,
		Status:       string(payout.Status),
		Amount:       payout.Amount,
		Currency:     payout.Currency,
	})

	// Отправка провайдеру после коммита. Ошибка логируется: выплата
	// создана, её текущий статус возвращается клиенту как есть.
	sent, err := uc.aggregator.Send(ctx, req.Actor, payout.ID)
	if err != nil {
		uc.logger.Error("CreatePayout: send failed for payout=%s: %v", payout.ID, err)
	} else {
		payout = sent
	}

	return toResponse(payout), nil
}

func validateRequest(req *Request) error {
	if req.Actor.UserID == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if req.ProProfileID == "" {
		return fmt.Errorf("%w: proProfileId is required", ErrInvalidInput)
	}
	return nil
}

// Сборка и отправка выплат - операция оператора платформы.
// Исполнителю доступны только чтения: список невыплаченных заработков
// и карточка выплаты.
func canAggregate(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

func lockKeyForPro(proProfileID string) string {
	return "payout:claim:" + proProfileID
}

func toResponse(p *domain.Payout) *Response {
	return &Response{
		ID:                p.ID,
		ProProfileID:      p.ProProfileID,
		Provider:          p.Provider,
		Status:            string(p.Status),
		Currency:          p.Currency,
		Amount:            p.Amount,
		ProviderReference: p.ProviderReference,
		CreatedAt:         p.CreatedAt,
		SentAt:            p.SentAt,
	}
}
