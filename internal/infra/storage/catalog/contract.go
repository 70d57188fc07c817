package catalog

import (
	"github.com/m04kA/SMC-MentoringService/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
