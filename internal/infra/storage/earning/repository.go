package earning

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

// Repository репозиторий для работы с заработками исполнителей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заработков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает заработок. Уникальный индекс на booking_id гарантирует
// ровно одну запись на бронирование: нарушение -> ErrDuplicateEarning.
func (r *Repository) Create(ctx context.Context, earning *domain.Earning) (*domain.Earning, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if earning.ID == "" {
		earning.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("earnings").
		Columns("id", "booking_id", "pro_profile_id", "amount").
		Values(earning.ID, earning.BookingID, earning.ProProfileID, earning.Amount).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEarning
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	earning.CreatedAt = createdAt.Time

	return earning, nil
}

// GetByBookingID получает заработок по ID бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Earning, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "pro_profile_id", "amount", "created_at").
		From("earnings").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var earning domain.Earning
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&earning.ID,
		&earning.BookingID,
		&earning.ProProfileID,
		&earning.Amount,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEarningNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan earning: %v", ErrScanRow, err)
	}

	earning.CreatedAt = createdAt.Time

	return &earning, nil
}

// ListPayableByPro получает заработки исполнителя, ещё не включённые ни в
// одну выплату. Внутри транзакции блокирует строки заработков (FOR UPDATE OF e),
// чтобы конкурентные агрегации не забрали один и тот же заработок.
func (r *Repository) ListPayableByPro(ctx context.Context, proProfileID string) ([]*domain.Earning, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"e.id",
		"e.booking_id",
		"e.pro_profile_id",
		"e.amount",
		"e.created_at",
	).
		From("earnings e").
		LeftJoin("payout_items pi ON pi.earning_id = e.id").
		Where(squirrel.Eq{"e.pro_profile_id": proProfileID}).
		Where("pi.id IS NULL").
		OrderBy("e.created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF e")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPayableByPro - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPayableByPro - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	earnings := make([]*domain.Earning, 0)
	for rows.Next() {
		var earning domain.Earning
		var createdAt sql.NullTime

		err := rows.Scan(
			&earning.ID,
			&earning.BookingID,
			&earning.ProProfileID,
			&earning.Amount,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPayableByPro - scan row: %v", ErrScanRow, err)
		}

		earning.CreatedAt = createdAt.Time
		earnings = append(earnings, &earning)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPayableByPro - rows error: %v", ErrScanRow, err)
	}

	return earnings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
