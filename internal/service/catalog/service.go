package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-MentoringService/internal/integrations/mentorprofile"
	"github.com/m04kA/SMC-MentoringService/internal/service/catalog/models"
)

// Service сервис каталожных сессий
type Service struct {
	catalogRepo  CatalogRepository
	mentorClient MentorClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, mentorClient MentorClient, logger Logger) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		mentorClient: mentorClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create публикует каталожную сессию от имени ментора
// Доступно только одобренным менторам
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Create: publishing catalog session by mentor=%d, startsAt=%s",
		req.UserID, req.StartsAt.Format("2006-01-02T15:04"))

	session, err := s.validateCreate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for mentor=%d: %v", req.UserID, err)
		return nil, err
	}

	mentor, err := s.mentorClient.GetMentor(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, mentorprofile.ErrMentorNotFound) {
			s.logger.Warn("Create: mentor=%d not found", req.UserID)
			return nil, ErrMentorNotFound
		}
		s.logger.Error("Create: failed to get mentor=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - failed to get mentor: %v", ErrInternal, err)
	}
	if !mentor.IsApproved() {
		s.logger.Warn("Create: mentor=%d has status=%s", req.UserID, mentor.Status)
		return nil, ErrMentorNotApproved
	}

	created, err := s.catalogRepo.Create(ctx, session)
	if err != nil {
		s.logger.Error("Create: repository error for mentor=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully published catalog session id=%d", created.ID)
	return models.FromDomainSession(created), nil
}

// GetByID получает каталожную сессию с признаком заполненности
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching catalog session id=%d", id)

	session, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: catalog session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for catalog session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSession(session), nil
}

// ListUpcoming получает ещё не начавшиеся сессии, опционально одного ментора
func (s *Service) ListUpcoming(ctx context.Context, req *models.ListSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("ListUpcoming: fetching upcoming catalog sessions, mentor=%v", req.MentorID)

	sessions, err := s.catalogRepo.ListUpcoming(ctx, s.timeProvider.Now(), req.MentorID)
	if err != nil {
		s.logger.Error("ListUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUpcoming: successfully fetched %d catalog sessions", len(sessions))
	return models.FromDomainSessionList(sessions), nil
}

// validateCreate проверяет запрос и собирает domain модель
func (s *Service) validateCreate(req *models.CreateSessionRequest) (*domain.CatalogSession, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > domain.MaxCatalogTitleLength {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, domain.MaxCatalogTitleLength)
	}

	if req.DurationMinutes < domain.MinCatalogDurationMinutes || req.DurationMinutes > domain.MaxCatalogDurationMinutes {
		return nil, fmt.Errorf("%w: duration must be %d-%d minutes",
			ErrInvalidInput, domain.MinCatalogDurationMinutes, domain.MaxCatalogDurationMinutes)
	}

	capacity := domain.DefaultCatalogCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity < 1 || capacity > domain.MaxCatalogCapacity {
		return nil, fmt.Errorf("%w: capacity must be 1-%d", ErrInvalidInput, domain.MaxCatalogCapacity)
	}

	if req.StartsAt.IsZero() || !req.StartsAt.After(s.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: session must start in the future", ErrInvalidInput)
	}

	return &domain.CatalogSession{
		MentorID:        req.UserID,
		Title:           title,
		Description:     req.Description,
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
		Capacity:        capacity,
	}, nil
}
