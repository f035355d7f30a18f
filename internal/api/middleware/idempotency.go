package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/idempotency"
)

const (
	// HeaderIdempotencyKey ключ идемпотентности запроса
	HeaderIdempotencyKey = "Idempotency-Key"

	// HeaderIdempotentReplay выставляется в ответах, взятых из хранилища
	HeaderIdempotentReplay = "Idempotent-Replayed"

	msgRequestInProgress = "запрос с этим ключом уже выполняется"
)

// Idempotency повторяет сохранённый ответ для уже выполненного запроса с тем же ключом
// Запросы без заголовка проходят как есть. Ответы 5xx не сохраняются, ключ освобождается
func Idempotency(store IdempotencyStore, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
			if key == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			actorID, _ := GetActorID(r.Context())
			scoped := fmt.Sprintf("%d:%s:%s:%s", actorID, r.Method, r.URL.Path, key)

			stored, err := store.Reserve(r.Context(), scoped)
			switch {
			case errors.Is(err, idempotency.ErrInProgress):
				log.Warn("%s %s - Idempotent request in progress: key=%s", r.Method, r.URL.Path, key)
				handlers.RespondConflict(w, msgRequestInProgress)
				return
			case err != nil:
				log.Error("%s %s - Idempotency store unavailable, serving without replay: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			case stored != nil:
				log.Info("%s %s - Replaying stored response: key=%s, status=%d", r.Method, r.URL.Path, key, stored.StatusCode)
				if stored.ContentType != "" {
					w.Header().Set("Content-Type", stored.ContentType)
				}
				w.Header().Set(HeaderIdempotentReplay, "true")
				w.WriteHeader(stored.StatusCode)
				_, _ = w.Write(stored.Body)
				return
			}

			rec := newResponseRecorder(w, true)
			next.ServeHTTP(rec, r)

			if rec.status >= http.StatusInternalServerError {
				if err := store.Release(r.Context(), scoped); err != nil {
					log.Error("%s %s - Failed to release idempotency key: %v", r.Method, r.URL.Path, err)
				}
				return
			}

			err = store.Complete(r.Context(), scoped, idempotency.Record{
				StatusCode:  rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			})
			if err != nil {
				log.Error("%s %s - Failed to store idempotent response: %v", r.Method, r.URL.Path, err)
			}
		})
	}
}
