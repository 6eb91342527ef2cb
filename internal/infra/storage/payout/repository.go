package payout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var payoutColumns = []string{
	"id",
	"pro_profile_id",
	"provider",
	"status",
	"currency",
	"amount",
	"provider_reference",
	"created_at",
	"sent_at",
}

// Repository репозиторий для работы с выплатами и их позициями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория выплат
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает выплату. Сумма фиксируется при создании и не пересчитывается.
func (r *Repository) Create(ctx context.Context, p *domain.Payout) (*domain.Payout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("payouts").
		Columns("id", "pro_profile_id", "provider", "status", "currency", "amount", "provider_reference").
		Values(p.ID, p.ProProfileID, p.Provider, p.Status, p.Currency, p.Amount, p.ProviderReference).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time

	return p, nil
}

// CreateItems создает позиции выплаты. Уникальный индекс на earning_id
// по всей таблице гарантирует, что заработок не попадёт в две выплаты:
// нарушение -> ErrEarningAlreadyClaimed.
func (r *Repository) CreateItems(ctx context.Context, payoutID string, earnings []*domain.Earning) ([]*domain.PayoutItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("payout_items").
		Columns("id", "payout_id", "earning_id", "amount")

	items := make([]*domain.PayoutItem, 0, len(earnings))
	for _, e := range earnings {
		item := &domain.PayoutItem{
			ID:        uuid.NewString(),
			PayoutID:  payoutID,
			EarningID: e.ID,
			Amount:    e.Amount,
		}
		insertBuilder = insertBuilder.Values(item.ID, item.PayoutID, item.EarningID, item.Amount)
		items = append(items, item)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateItems - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEarningAlreadyClaimed
		}
		return nil, fmt.Errorf("%w: CreateItems - execute insert: %v", ErrExecQuery, err)
	}

	return items, nil
}

// GetByID получает выплату по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(payoutColumns...).
		From("payouts").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payout
	var createdAt sql.NullTime
	var sentAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ProProfileID,
		&p.Provider,
		&p.Status,
		&p.Currency,
		&p.Amount,
		&p.ProviderReference,
		&createdAt,
		&sentAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPayoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payout: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	if sentAt.Valid {
		p.SentAt = &sentAt.Time
	}

	return &p, nil
}

// ListItems получает позиции выплаты
func (r *Repository) ListItems(ctx context.Context, payoutID string) ([]*domain.PayoutItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "payout_id", "earning_id", "amount", "created_at").
		From("payout_items").
		Where(squirrel.Eq{"payout_id": payoutID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.PayoutItem, 0)
	for rows.Next() {
		var item domain.PayoutItem
		var createdAt sql.NullTime

		err := rows.Scan(&item.ID, &item.PayoutID, &item.EarningID, &item.Amount, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ListItems - scan row: %v", ErrScanRow, err)
		}

		item.CreatedAt = createdAt.Time
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// UpdateStatus обновляет статус выплаты через compare-and-swap.
// При переходе в SENT дополнительно фиксирует sent_at.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.PayoutStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("payouts").
		Set("status", to).
		Where(squirrel.Eq{"id": id, "status": from})

	if to == domain.PayoutSent {
		updateBuilder = updateBuilder.Set("sent_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}

	return nil
}

// SetProviderReference сохраняет ссылку провайдера выплат
func (r *Repository) SetProviderReference(ctx context.Context, id string, providerReference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payouts").
		Set("provider_reference", providerReference).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetProviderReference - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetProviderReference - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetProviderReference - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPayoutNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
