package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentoringService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания менторов
// Расписание хранится одной JSONB строкой на ментора в формате {"monday": ["10:00-11:00"]}
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает расписание ментора
func (r *Repository) Get(ctx context.Context, mentorID int64) (*domain.MentorAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("mentor_id", "weekly", "updated_at").
		From("mentor_availability").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		availability domain.MentorAvailability
		raw          []byte
		updatedAt    sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&availability.MentorID, &raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan availability: %v", ErrScanRow, err)
	}

	var wire map[string][]string
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: Get - decode: %v", ErrEncode, err)
	}
	weekly, err := domain.WeeklyAvailabilityFromWire(wire)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - stored value: %v", ErrEncode, err)
	}

	availability.Weekly = weekly
	availability.UpdatedAt = updatedAt.Time

	return &availability, nil
}

// Replace целиком заменяет расписание ментора (upsert одной строки)
func (r *Repository) Replace(ctx context.Context, availability *domain.MentorAvailability) (*domain.MentorAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(availability.Weekly.ToWire())
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - encode: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("mentor_availability").
		Columns("mentor_id", "weekly").
		Values(availability.MentorID, string(raw)).
		Suffix("ON CONFLICT (mentor_id) DO UPDATE SET weekly = EXCLUDED.weekly, updated_at = NOW() RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Replace - execute upsert: %v", ErrExecQuery, err)
	}

	availability.Weekly = availability.Weekly.Normalize()
	availability.UpdatedAt = updatedAt.Time

	return availability, nil
}
