package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-MentoringService/internal/service/availability/models"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
)

func newService() *Service {
	return NewService(memory.NewAvailabilityRepository(memory.NewDB()), logger.NewNop())
}

func TestService_SetAndGet(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	resp, err := svc.Set(ctx, &models.SetAvailabilityRequest{
		UserID:   7,
		MentorID: 7,
		Weekly: map[string][]string{
			"Monday": {"11:00-12:00", "10:00-11:00", "10:00-11:00"},
			"friday": {"20:00-21:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00-11:00", "11:00-12:00"}, resp.Weekly["monday"])
	assert.Equal(t, []string{"20:00-21:00"}, resp.Weekly["friday"])
	assert.Empty(t, resp.Weekly["sunday"])
	assert.Len(t, resp.Weekly, 7)

	got, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, resp.Weekly, got.Weekly)

	slot, err := domain.ParseTimeSlot("10:00-11:00")
	require.NoError(t, err)
	ok, err := svc.IsBookable(ctx, 7, time.Monday, slot)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsBookable(ctx, 7, time.Tuesday, slot)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_SetReplacesWholesale(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Set(ctx, &models.SetAvailabilityRequest{UserID: 7, MentorID: 7,
		Weekly: map[string][]string{"monday": {"10:00-11:00"}}})
	require.NoError(t, err)
	_, err = svc.Set(ctx, &models.SetAvailabilityRequest{UserID: 7, MentorID: 7,
		Weekly: map[string][]string{"tuesday": {"12:00-13:00"}}})
	require.NoError(t, err)

	got, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.Weekly["monday"])
	assert.Equal(t, []string{"12:00-13:00"}, got.Weekly["tuesday"])
}

func TestService_SetRejectsInvalid(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name   string
		req    *models.SetAvailabilityRequest
		target error
	}{
		{
			name:   "another user",
			req:    &models.SetAvailabilityRequest{UserID: 8, MentorID: 7},
			target: domain.ErrForbidden,
		},
		{
			name: "slot outside catalog",
			req: &models.SetAvailabilityRequest{UserID: 7, MentorID: 7,
				Weekly: map[string][]string{"monday": {"08:00-09:00"}}},
			target: domain.ErrInvalidSlot,
		},
		{
			name: "half hour slot",
			req: &models.SetAvailabilityRequest{UserID: 7, MentorID: 7,
				Weekly: map[string][]string{"monday": {"10:30-11:30"}}},
			target: domain.ErrValidation,
		},
		{
			name: "unknown weekday",
			req: &models.SetAvailabilityRequest{UserID: 7, MentorID: 7,
				Weekly: map[string][]string{"someday": {"10:00-11:00"}}},
			target: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Set(ctx, tt.req)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	// неудачная замена не трогает прежнее расписание
	got, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got.UpdatedAt)
}

func TestService_GetEmpty(t *testing.T) {
	got, err := newService().Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), got.MentorID)
	assert.Len(t, got.Weekly, 7)
	assert.Nil(t, got.UpdatedAt)
}
