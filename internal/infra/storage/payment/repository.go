package payment

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

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

var paymentColumns = []string{
	"id",
	"booking_id",
	"provider",
	"status",
	"amount_estimated",
	"amount_authorized",
	"amount_captured",
	"checkout_url",
	"provider_reference",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платёж. Уникальный индекс на booking_id гарантирует
// не более одного платежа на бронирование: нарушение -> ErrDuplicatePayment.
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"id",
			"booking_id",
			"provider",
			"status",
			"amount_estimated",
			"amount_authorized",
			"amount_captured",
			"checkout_url",
			"provider_reference",
		).
		Values(
			payment.ID,
			payment.BookingID,
			payment.Provider,
			payment.Status,
			payment.AmountEstimated,
			payment.AmountAuthorized,
			payment.AmountCaptured,
			payment.CheckoutURL,
			payment.ProviderReference,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePayment
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает платёж по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByBookingID получает платёж бронирования (связь 1:1)
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	return r.getByColumn(ctx, "booking_id", bookingID)
}

func (r *Repository) getByColumn(ctx context.Context, column, value string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{column: value})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByColumn - build select query: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByColumn - scan payment: %v", ErrScanRow, err)
	}

	return payment, nil
}

// UpdateStatus обновляет статус платежа через compare-and-swap
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error {
	return r.update(ctx, id, from, map[string]interface{}{
		"status": to,
	})
}

// MarkAuthorized переводит платёж в AUTHORIZED и фиксирует авторизованную
// сумму. CAS по исходному статусу from.
func (r *Repository) MarkAuthorized(ctx context.Context, id string, from domain.PaymentStatus, amountAuthorized int64) error {
	return r.update(ctx, id, from, map[string]interface{}{
		"status":            domain.PaymentAuthorized,
		"amount_authorized": amountAuthorized,
	})
}

// MarkCaptured переводит платёж AUTHORIZED -> CAPTURED и фиксирует списанную сумму
func (r *Repository) MarkCaptured(ctx context.Context, id string, amountCaptured int64) error {
	return r.update(ctx, id, domain.PaymentAuthorized, map[string]interface{}{
		"status":          domain.PaymentCaptured,
		"amount_captured": amountCaptured,
	})
}

// SetProviderReference сохраняет ссылку провайдера и checkout URL
func (r *Repository) SetProviderReference(ctx context.Context, id string, providerReference, checkoutURL *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("provider_reference", providerReference).
		Set("checkout_url", checkoutURL).
		Set("updated_at", squirrel.Expr("NOW()")).
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
		return ErrPaymentNotFound
	}

	return nil
}

// update CAS-обновление платежа: меняет поля только если статус равен from
func (r *Repository) update(ctx context.Context, id string, from domain.PaymentStatus, sets map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("payments").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	for column, value := range sets {
		updateBuilder = updateBuilder.Set(column, value)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}

	return nil
}

func scanPayment(row interface{ Scan(dest ...interface{}) error }) (*domain.Payment, error) {
	var payment domain.Payment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Provider,
		&payment.Status,
		&payment.AmountEstimated,
		&payment.AmountAuthorized,
		&payment.AmountCaptured,
		&payment.CheckoutURL,
		&payment.ProviderReference,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
