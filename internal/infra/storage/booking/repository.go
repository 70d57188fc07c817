package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentoringService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MentoringService/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"mentor_id",
	"mentee_id",
	"booking_date",
	"slot_start",
	"slot_end",
	"catalog_session_id",
	"starts_at",
	"ends_at",
	"message",
	"status",
	"rejection_reason",
	"meeting_ref",
	"joined_at",
	"cancelled_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertIfNoConflict атомарно проверяет конфликт и создает бронирование
// Должен вызываться внутри транзакции:
//   - для слота недели берётся advisory lock по (mentor, date, slot), затем проверяются активные бронирования;
//     частичный уникальный индекс bookings_active_slot_uniq страхует от гонки на уровне БД
//   - для каталожной сессии строка сессии блокируется FOR UPDATE и сравнивается число активных бронирований с вместимостью
func (r *Repository) InsertIfNoConflict(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.IsAdHoc() {
		if err := r.lockSlot(ctx, executor, booking); err != nil {
			return nil, err
		}
	} else {
		if err := r.checkCapacity(ctx, executor, *booking.CatalogSessionID); err != nil {
			return nil, err
		}
	}

	return r.insert(ctx, executor, booking)
}

func (r *Repository) lockSlot(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	key := fmt.Sprintf("booking:%d:%s:%s", booking.MentorID, booking.BookingDate.Format(domain.DateFormat), booking.Slot.Start)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: InsertIfNoConflict - advisory lock: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"mentor_id":          booking.MentorID,
			"booking_date":       booking.BookingDate.Format(domain.DateFormat),
			"slot_start":         booking.Slot.Start,
			"catalog_session_id": nil,
			"status":             domain.ActiveStatusStrings(),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertIfNoConflict - build count query: %v", ErrBuildQuery, err)
	}

	var active int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&active); err != nil {
		return fmt.Errorf("%w: InsertIfNoConflict - count active: %v", ErrScanRow, err)
	}
	if active > 0 {
		return ErrSlotConflict
	}
	return nil
}

func (r *Repository) checkCapacity(ctx context.Context, executor DBExecutor, sessionID int64) error {
	query, args, err := psqlbuilder.Select("capacity").
		From("catalog_sessions").
		Where(squirrel.Eq{"id": sessionID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertIfNoConflict - build lock query: %v", ErrBuildQuery, err)
	}

	var capacity int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCatalogSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: InsertIfNoConflict - lock catalog session: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"catalog_session_id": sessionID,
			"status":             domain.ActiveStatusStrings(),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertIfNoConflict - build count query: %v", ErrBuildQuery, err)
	}

	var active int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&active); err != nil {
		return fmt.Errorf("%w: InsertIfNoConflict - count active: %v", ErrScanRow, err)
	}
	if active >= capacity {
		return ErrCapacityExhausted
	}
	return nil
}

func (r *Repository) insert(ctx context.Context, executor DBExecutor, booking *domain.Booking) (*domain.Booking, error) {
	var (
		bookingDate        interface{}
		slotStart, slotEnd types.TimeString
	)
	if booking.IsAdHoc() {
		bookingDate = booking.BookingDate.Format(domain.DateFormat)
		slotStart, slotEnd = booking.Slot.Start, booking.Slot.End
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"mentor_id",
			"mentee_id",
			"booking_date",
			"slot_start",
			"slot_end",
			"catalog_session_id",
			"starts_at",
			"ends_at",
			"message",
			"status",
		).
		Values(
			booking.MentorID,
			booking.MenteeID,
			bookingDate,
			slotStart,
			slotEnd,
			booking.CatalogSessionID,
			booking.StartsAt,
			booking.EndsAt,
			booking.Message,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertIfNoConflict - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: InsertIfNoConflict - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования пользователя
// Фильтрует по роли (ментор / менти / любая) и, опционально, по статусу
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("starts_at DESC", "id DESC")

	switch filter.Role {
	case domain.RoleMentor:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"mentor_id": filter.UserID})
	case domain.RoleMentee:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"mentee_id": filter.UserID})
	default:
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"mentor_id": filter.UserID},
			squirrel.Eq{"mentee_id": filter.UserID},
		})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveByMentorDate получает активные бронирования слотов ментора на дату
func (r *Repository) ListActiveByMentorDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"mentor_id":          mentorID,
			"booking_date":       date.Format(domain.DateFormat),
			"catalog_session_id": nil,
			"status":             domain.ActiveStatusStrings(),
		}).
		OrderBy("slot_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByMentorDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByMentorDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ApplyStatusChange переводит бронирование из статуса expected в change.Status
// Обновление защищено условием status = expected: если статус уже изменился, возвращается ErrStatusChanged
func (r *Repository) ApplyStatusChange(ctx context.Context, id int64, expected domain.BookingStatus, change domain.StatusChange) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", change.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": expected})

	if change.RejectionReason != nil {
		updateBuilder = updateBuilder.Set("rejection_reason", *change.RejectionReason)
	}
	if change.MeetingRef != nil {
		updateBuilder = updateBuilder.Set("meeting_ref", *change.MeetingRef)
	}
	if change.CancelledBy != nil {
		updateBuilder = updateBuilder.Set("cancelled_by", *change.CancelledBy)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ApplyStatusChange - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ApplyStatusChange - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: ApplyStatusChange - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrStatusChanged
	}

	return r.GetByID(ctx, id)
}

// MarkJoined фиксирует время первого допуска участника к встрече
// Повторные вызовы не меняют уже записанное значение
// Допуск фиксируется только для подтверждённого бронирования, иначе ErrNotJoinable
func (r *Repository) MarkJoined(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("joined_at", squirrel.Expr("COALESCE(joined_at, ?)", at)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkJoined - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkJoined - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkJoined - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotJoinable
	}

	return nil
}

// isUniqueViolation распознаёт нарушение уникального индекса для драйверов lib/pq и pgx
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		bookingDate          sql.NullTime
		slotStart, slotEnd   types.TimeString
		catalogSessionID     sql.NullInt64
		message, reason, ref sql.NullString
		joinedAt             sql.NullTime
		cancelledBy          sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.MentorID,
		&booking.MenteeID,
		&bookingDate,
		&slotStart,
		&slotEnd,
		&catalogSessionID,
		&booking.StartsAt,
		&booking.EndsAt,
		&message,
		&booking.Status,
		&reason,
		&ref,
		&joinedAt,
		&cancelledBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bookingDate.Valid {
		date := bookingDate.Time
		booking.BookingDate = &date
		booking.Slot = &domain.TimeSlot{Start: slotStart, End: slotEnd}
	}
	if catalogSessionID.Valid {
		id := catalogSessionID.Int64
		booking.CatalogSessionID = &id
	}
	if message.Valid {
		booking.Message = &message.String
	}
	if reason.Valid {
		booking.RejectionReason = &reason.String
	}
	if ref.Valid {
		booking.MeetingRef = &ref.String
	}
	if joinedAt.Valid {
		at := joinedAt.Time
		booking.JoinedAt = &at
	}
	if cancelledBy.Valid {
		by := cancelledBy.Int64
		booking.CancelledBy = &by
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
