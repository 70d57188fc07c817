package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentoringService/pkg/psqlbuilder"
)

// activeBookingsExpr подзапрос числа активных бронирований сессии
const activeBookingsExpr = "(SELECT COUNT(*) FROM bookings b WHERE b.catalog_session_id = cs.id AND b.status IN ('pending', 'confirmed')) AS active_bookings"

var sessionColumns = []string{
	"cs.id",
	"cs.mentor_id",
	"cs.title",
	"cs.description",
	"cs.starts_at",
	"cs.duration_minutes",
	"cs.capacity",
	activeBookingsExpr,
	"cs.created_at",
	"cs.updated_at",
}

// Repository репозиторий каталожных сессий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталожных сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает каталожную сессию
func (r *Repository) Create(ctx context.Context, session *domain.CatalogSession) (*domain.CatalogSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("catalog_sessions").
		Columns(
			"mentor_id",
			"title",
			"description",
			"starts_at",
			"duration_minutes",
			"capacity",
		).
		Values(
			session.MentorID,
			session.Title,
			session.Description,
			session.StartsAt,
			session.DurationMinutes,
			session.Capacity,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetByID получает сессию вместе с числом активных бронирований
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CatalogSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("catalog_sessions cs").
		Where(squirrel.Eq{"cs.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	session, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return session, nil
}

// ListUpcoming получает ещё не начавшиеся сессии, опционально одного ментора
func (r *Repository) ListUpcoming(ctx context.Context, now time.Time, mentorID *int64) ([]*domain.CatalogSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("catalog_sessions cs").
		Where(squirrel.Gt{"cs.starts_at": now}).
		OrderBy("cs.starts_at ASC", "cs.id ASC")

	if mentorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"cs.mentor_id": *mentorID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.CatalogSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListUpcoming - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.CatalogSession, error) {
	var (
		session              domain.CatalogSession
		description          sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&session.ID,
		&session.MentorID,
		&session.Title,
		&description,
		&session.StartsAt,
		&session.DurationMinutes,
		&session.Capacity,
		&session.ActiveBookings,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		session.Description = &description.String
	}
	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}
