package credits

import (
	"context"
	"errors"
	"fmt"

	creditRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/credit"
	"github.com/m04kA/SMC-MentoringService/internal/service/credits/models"
)

// Service сервис кредитов менти
type Service struct {
	creditRepo CreditRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса кредитов
func NewService(creditRepo CreditRepository, logger Logger) *Service {
	return &Service{
		creditRepo: creditRepo,
		logger:     logger,
	}
}

// Grant начисляет менти кредиты и возвращает новый остаток
func (s *Service) Grant(ctx context.Context, req *models.GrantCreditsRequest) (*models.BalanceResponse, error) {
	s.logger.Info("Grant: granting %d credits to mentee=%d", req.Amount, req.MenteeID)

	if req.MenteeID <= 0 {
		s.logger.Warn("Grant: invalid menteeID=%d", req.MenteeID)
		return nil, fmt.Errorf("%w: menteeID must be positive", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		s.logger.Warn("Grant: invalid amount=%d for mentee=%d", req.Amount, req.MenteeID)
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	balance, err := s.creditRepo.Grant(ctx, req.MenteeID, req.Amount)
	if err != nil {
		if errors.Is(err, creditRepo.ErrInvalidAmount) {
			return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
		}
		s.logger.Error("Grant: repository error for mentee=%d: %v", req.MenteeID, err)
		return nil, fmt.Errorf("%w: Grant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Grant: mentee=%d balance is now %d", req.MenteeID, balance)
	return &models.BalanceResponse{MenteeID: req.MenteeID, Balance: balance}, nil
}

// Balance возвращает остаток кредитов менти
func (s *Service) Balance(ctx context.Context, menteeID int64) (*models.BalanceResponse, error) {
	if menteeID <= 0 {
		return nil, fmt.Errorf("%w: menteeID must be positive", ErrInvalidInput)
	}

	balance, err := s.creditRepo.Balance(ctx, menteeID)
	if err != nil {
		s.logger.Error("Balance: repository error for mentee=%d: %v", menteeID, err)
		return nil, fmt.Errorf("%w: Balance - repository error: %v", ErrInternal, err)
	}

	return &models.BalanceResponse{MenteeID: menteeID, Balance: balance}, nil
}
