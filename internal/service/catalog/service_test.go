package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-MentoringService/internal/integrations/mentorprofile"
	"github.com/m04kA/SMC-MentoringService/internal/service/catalog/models"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
	"github.com/m04kA/SMC-MentoringService/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type mentors map[int64]domain.MentorStatus

func (m mentors) GetMentor(_ context.Context, id int64) (*domain.Mentor, error) {
	status, ok := m[id]
	if !ok {
		return nil, mentorprofile.ErrMentorNotFound
	}
	return &domain.Mentor{ID: id, Status: status}, nil
}

var now = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newService() *Service {
	svc := NewService(
		memory.NewCatalogRepository(memory.NewDB()),
		mentors{7: domain.MentorApproved, 8: domain.MentorPending},
		logger.NewNop(),
	)
	svc.timeProvider = fixedTime{now: now}
	return svc
}

func TestService_CreateAndList(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateSessionRequest{
		UserID:          7,
		Title:           "  Go concurrency  ",
		StartsAt:        now.Add(24 * time.Hour),
		DurationMinutes: 90,
		Capacity:        ptr.Ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Go concurrency", created.Title)
	assert.Equal(t, 5, created.Capacity)
	assert.False(t, created.IsFull)
	assert.Equal(t, now.Add(24*time.Hour+90*time.Minute), created.EndsAt)

	single, err := svc.Create(ctx, &models.CreateSessionRequest{
		UserID:          7,
		Title:           "Career chat",
		StartsAt:        now.Add(48 * time.Hour),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCatalogCapacity, single.Capacity)

	list, err := svc.ListUpcoming(ctx, &models.ListSessionsRequest{MentorID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.Len(t, list.Sessions, 2)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_CreateRejects(t *testing.T) {
	svc := newService()
	valid := func() *models.CreateSessionRequest {
		return &models.CreateSessionRequest{
			UserID:          7,
			Title:           "Session",
			StartsAt:        now.Add(time.Hour),
			DurationMinutes: 60,
		}
	}

	tests := []struct {
		name   string
		mutate func(r *models.CreateSessionRequest)
		target error
	}{
		{"empty title", func(r *models.CreateSessionRequest) { r.Title = "   " }, domain.ErrValidation},
		{"too short", func(r *models.CreateSessionRequest) { r.DurationMinutes = 5 }, domain.ErrValidation},
		{"zero capacity", func(r *models.CreateSessionRequest) { r.Capacity = ptr.Ptr(0) }, domain.ErrValidation},
		{"in the past", func(r *models.CreateSessionRequest) { r.StartsAt = now.Add(-time.Minute) }, domain.ErrValidation},
		{"pending mentor", func(r *models.CreateSessionRequest) { r.UserID = 8 }, domain.ErrForbidden},
		{"unknown mentor", func(r *models.CreateSessionRequest) { r.UserID = 9 }, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}
