package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/catalog"
)

// CatalogRepository каталожные сессии в памяти
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository создает репозиторий каталожных сессий поверх db
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Create создает каталожную сессию
func (r *CatalogRepository) Create(ctx context.Context, session *domain.CatalogSession) (*domain.CatalogSession, error) {
	j, release := r.db.enter(ctx)
	defer release()

	r.db.nextSessionID++
	now := r.db.now()

	stored := *session
	stored.ID = r.db.nextSessionID
	stored.ActiveBookings = 0
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.sessions[stored.ID] = &stored

	id := stored.ID
	record(j, func() { delete(r.db.sessions, id) })

	out := stored
	return &out, nil
}

// GetByID получает сессию вместе с числом активных бронирований
func (r *CatalogRepository) GetByID(ctx context.Context, id int64) (*domain.CatalogSession, error) {
	_, release := r.db.enter(ctx)
	defer release()

	s, ok := r.db.sessions[id]
	if !ok {
		return nil, catalogRepo.ErrSessionNotFound
	}
	out := *s
	out.ActiveBookings = r.db.activeForSession(id)
	return &out, nil
}

// ListUpcoming получает ещё не начавшиеся сессии, опционально одного ментора
func (r *CatalogRepository) ListUpcoming(ctx context.Context, now time.Time, mentorID *int64) ([]*domain.CatalogSession, error) {
	_, release := r.db.enter(ctx)
	defer release()

	sessions := make([]*domain.CatalogSession, 0)
	for _, s := range r.db.sessions {
		if !s.StartsAt.After(now) {
			continue
		}
		if mentorID != nil && s.MentorID != *mentorID {
			continue
		}
		out := *s
		out.ActiveBookings = r.db.activeForSession(s.ID)
		sessions = append(sessions, &out)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].StartsAt.Equal(sessions[j].StartsAt) {
			return sessions[i].StartsAt.Before(sessions[j].StartsAt)
		}
		return sessions[i].ID < sessions[j].ID
	})

	return sessions, nil
}
