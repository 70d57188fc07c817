package catalog_sessions

import (
	"context"

	"github.com/m04kA/SMC-MentoringService/internal/service/catalog/models"
)

type CatalogService interface {
	Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SessionResponse, error)
	ListUpcoming(ctx context.Context, req *models.ListSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
