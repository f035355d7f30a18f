package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"
)

const (
	defaultPrefix     = "idempotency"
	defaultPendingTTL = 30 * time.Second
	defaultTTL        = 24 * time.Hour

	statePending = "pending"
	stateDone    = "done"
)

// Record сохранённый ответ на запрос
type Record struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

type entry struct {
	State  string  `json:"state"`
	Record *Record `json:"record,omitempty"`
}

// Store хранилище ключей идемпотентности в Redis
// Первый запрос резервирует ключ через SET NX, после выполнения ключ хранит ответ
type Store struct {
	client     red.UniversalClient
	prefix     string
	pendingTTL time.Duration
	ttl        time.Duration
}

// NewStore создает хранилище
// Нулевые TTL заменяются значениями по умолчанию
func NewStore(client red.UniversalClient, keyPrefix string, pendingTTL, ttl time.Duration) *Store {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	if pendingTTL <= 0 {
		pendingTTL = defaultPendingTTL
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Store{
		client:     client,
		prefix:     prefix,
		pendingTTL: pendingTTL,
		ttl:        ttl,
	}
}

// Reserve резервирует ключ
// Возвращает (nil, nil), если ключ зарезервирован этим вызовом,
// сохранённый ответ, если запрос уже выполнен, и ErrInProgress, если он ещё выполняется
func (s *Store) Reserve(ctx context.Context, key string) (*Record, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}

	pending, err := json.Marshal(entry{State: statePending})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %v", ErrStorage, err)
	}

	ok, err := s.client.SetNX(ctx, s.key(key), pending, s.pendingTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: reserve: %v", ErrStorage, err)
	}
	if ok {
		return nil, nil
	}

	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, red.Nil) {
			// ключ истёк между SETNX и GET
			return nil, ErrInProgress
		}
		return nil, fmt.Errorf("%w: get: %v", ErrStorage, err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrStorage, err)
	}
	if e.State != stateDone || e.Record == nil {
		return nil, ErrInProgress
	}
	return e.Record, nil
}

// Complete сохраняет ответ для зарезервированного ключа
func (s *Store) Complete(ctx context.Context, key string, rec Record) error {
	raw, err := json.Marshal(entry{State: stateDone, Record: &rec})
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrStorage, err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: complete: %v", ErrStorage, err)
	}
	return nil
}

// Release снимает резерв, чтобы запрос можно было повторить
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: release: %v", ErrStorage, err)
	}
	return nil
}

func (s *Store) key(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}
