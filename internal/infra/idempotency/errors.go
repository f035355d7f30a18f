package idempotency

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInProgress возвращается, когда запрос с тем же ключом ещё выполняется
	ErrInProgress = fmt.Errorf("%w: request with this idempotency key is in progress", domain.ErrConflict)

	// ErrEmptyKey возвращается при пустом ключе
	ErrEmptyKey = fmt.Errorf("%w: idempotency key is empty", domain.ErrValidation)

	// ErrStorage возвращается при ошибках Redis
	ErrStorage = errors.New("idempotency: storage error")
)
