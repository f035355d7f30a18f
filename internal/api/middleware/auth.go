package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

// HeaderEmployeeID заголовок с ID сотрудника, проставляется шлюзом после аутентификации
const HeaderEmployeeID = "X-Employee-ID"

const msgMissingEmployeeID = "отсутствует или некорректен ID сотрудника"

type contextKey string

const actorIDKey contextKey = "actor_id"

// Auth извлекает ID сотрудника из заголовка и кладёт его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderEmployeeID)
		actorID, err := strconv.ParseInt(raw, 10, 64)
		if raw == "" || err != nil || actorID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingEmployeeID)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActorID(r.Context(), actorID)))
	})
}

// WithActorID сохраняет ID сотрудника в контексте
func WithActorID(ctx context.Context, actorID int64) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// GetActorID возвращает ID сотрудника из контекста
func GetActorID(ctx context.Context) (int64, bool) {
	actorID, ok := ctx.Value(actorIDKey).(int64)
	return actorID, ok && actorID > 0
}
