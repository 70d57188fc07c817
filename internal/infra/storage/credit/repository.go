package credit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentoringService/pkg/psqlbuilder"
)

// Repository баланс кредитов менти и журнал их движения
// Каждое изменение баланса сопровождается строкой в credit_ledger;
// Reserve и Refund вызываются в транзакции вместе с записью бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кредитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve списывает один кредит под бронирование
func (r *Repository) Reserve(ctx context.Context, menteeID, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mentee_credits").
		Set("remaining", squirrel.Expr("remaining - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"mentee_id": menteeID}).
		Where(squirrel.Gt{"remaining": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInsufficientCredit
	}

	return r.appendEntry(ctx, executor, menteeID, &bookingID, -1, domain.CreditReserve)
}

// Refund возвращает кредит, списанный под бронирование
func (r *Repository) Refund(ctx context.Context, menteeID, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mentee_credits").
		Set("remaining", squirrel.Expr("remaining + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"mentee_id": menteeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Refund - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Refund - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Refund - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return r.appendEntry(ctx, executor, menteeID, &bookingID, 1, domain.CreditRefund)
}

// Grant начисляет кредиты менти и возвращает новый баланс
func (r *Repository) Grant(ctx context.Context, menteeID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("mentee_credits").
		Columns("mentee_id", "remaining").
		Values(menteeID, amount).
		Suffix("ON CONFLICT (mentee_id) DO UPDATE SET remaining = mentee_credits.remaining + EXCLUDED.remaining, updated_at = NOW() RETURNING remaining").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Grant - build upsert query: %v", ErrBuildQuery, err)
	}

	var remaining int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&remaining); err != nil {
		return 0, fmt.Errorf("%w: Grant - execute upsert: %v", ErrExecQuery, err)
	}

	if err := r.appendEntry(ctx, executor, menteeID, nil, amount, domain.CreditGrant); err != nil {
		return 0, err
	}

	return remaining, nil
}

// Balance возвращает остаток кредитов менти (0, если записи нет)
func (r *Repository) Balance(ctx context.Context, menteeID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("remaining").
		From("mentee_credits").
		Where(squirrel.Eq{"mentee_id": menteeID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Balance - build select query: %v", ErrBuildQuery, err)
	}

	var remaining int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Balance - scan: %v", ErrScanRow, err)
	}

	return remaining, nil
}

// EntriesByBooking возвращает записи журнала по бронированию в порядке создания
func (r *Repository) EntriesByBooking(ctx context.Context, bookingID int64) ([]*domain.CreditEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "mentee_id", "booking_id", "delta", "reason", "created_at").
		From("credit_ledger").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: EntriesByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: EntriesByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.CreditEntry, 0)
	for rows.Next() {
		var (
			entry     domain.CreditEntry
			booking   sql.NullInt64
			createdAt sql.NullTime
		)
		if err := rows.Scan(&entry.ID, &entry.MenteeID, &booking, &entry.Delta, &entry.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: EntriesByBooking - scan row: %v", ErrScanRow, err)
		}
		if booking.Valid {
			id := booking.Int64
			entry.BookingID = &id
		}
		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: EntriesByBooking - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

func (r *Repository) appendEntry(ctx context.Context, executor DBExecutor, menteeID int64, bookingID *int64, delta int, reason domain.CreditReason) error {
	query, args, err := psqlbuilder.Insert("credit_ledger").
		Columns("mentee_id", "booking_id", "delta", "reason").
		Values(menteeID, bookingID, delta, reason).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: appendEntry - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: appendEntry - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
