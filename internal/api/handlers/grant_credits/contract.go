package grant_credits

import (
	"context"

	"github.com/m04kA/SMC-MentoringService/internal/service/credits/models"
)

type CreditService interface {
	Grant(ctx context.Context, req *models.GrantCreditsRequest) (*models.BalanceResponse, error)
	Balance(ctx context.Context, menteeID int64) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
