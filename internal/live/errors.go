package live

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrNotJoined отправитель не подключён к сессии (или его подключение заменено)
	ErrNotJoined = fmt.Errorf("%w: live: participant is not joined", domain.ErrForbidden)

	// ErrAuthorizationExpired срок допуска участника истёк
	ErrAuthorizationExpired = fmt.Errorf("%w: live: join authorization expired", domain.ErrForbidden)

	// ErrInvalidMessage пустое или слишком длинное сообщение
	ErrInvalidMessage = fmt.Errorf("%w: live: invalid message", domain.ErrValidation)

	// ErrRateLimited участник превысил допустимую частоту сообщений
	ErrRateLimited = errors.New("live: rate limit exceeded")
)
