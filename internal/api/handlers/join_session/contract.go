package join_session

import (
	"context"

	joinSession "github.com/m04kA/SMC-MentoringService/internal/usecase/join_session"
)

type JoinSessionUseCase interface {
	Execute(ctx context.Context, req *joinSession.Request) (*joinSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
