package memory

import (
	"context"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/availability"
)

// AvailabilityRepository недельные расписания менторов в памяти
type AvailabilityRepository struct {
	db *DB
}

// NewAvailabilityRepository создает репозиторий расписаний поверх db
func NewAvailabilityRepository(db *DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// Get получает расписание ментора
func (r *AvailabilityRepository) Get(ctx context.Context, mentorID int64) (*domain.MentorAvailability, error) {
	_, release := r.db.enter(ctx)
	defer release()

	a, ok := r.db.availability[mentorID]
	if !ok {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	return &domain.MentorAvailability{
		MentorID:  a.MentorID,
		Weekly:    a.Weekly.Normalize(),
		UpdatedAt: a.UpdatedAt,
	}, nil
}

// Replace целиком заменяет расписание ментора
func (r *AvailabilityRepository) Replace(ctx context.Context, availability *domain.MentorAvailability) (*domain.MentorAvailability, error) {
	j, release := r.db.enter(ctx)
	defer release()

	stored := &domain.MentorAvailability{
		MentorID:  availability.MentorID,
		Weekly:    availability.Weekly.Normalize(),
		UpdatedAt: r.db.now(),
	}

	mentorID := availability.MentorID
	previous, existed := r.db.availability[mentorID]
	r.db.availability[mentorID] = stored
	record(j, func() {
		if existed {
			r.db.availability[mentorID] = previous
		} else {
			delete(r.db.availability, mentorID)
		}
	})

	return &domain.MentorAvailability{
		MentorID:  stored.MentorID,
		Weekly:    stored.Weekly.Normalize(),
		UpdatedAt: stored.UpdatedAt,
	}, nil
}
