package credits

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-MentoringService/internal/service/credits/models"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
)

func TestService_GrantAccumulates(t *testing.T) {
	svc := NewService(memory.NewCreditRepository(memory.NewDB()), logger.NewNop())
	ctx := context.Background()

	resp, err := svc.Grant(ctx, &models.GrantCreditsRequest{MenteeID: 42, Amount: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Balance)

	resp, err = svc.Grant(ctx, &models.GrantCreditsRequest{MenteeID: 42, Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Balance)

	balance, err := svc.Balance(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.Balance)

	balance, err = svc.Balance(ctx, 43)
	require.NoError(t, err)
	assert.Zero(t, balance.Balance)
}

func TestService_GrantRejectsInvalidInput(t *testing.T) {
	svc := NewService(memory.NewCreditRepository(memory.NewDB()), logger.NewNop())

	for _, req := range []*models.GrantCreditsRequest{
		{MenteeID: 42, Amount: 0},
		{MenteeID: 42, Amount: -1},
		{MenteeID: 0, Amount: 1},
	} {
		_, err := svc.Grant(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}
