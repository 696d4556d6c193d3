package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"courier-tracking/internal/pkg/cache"
	"courier-tracking/internal/service/admin"
)

const (
	keyPrefix = "session:"

	// adminIndexPrefix множество токенов админа, чтобы отозвать их все разом
	adminIndexPrefix = "admin_sessions:"
)

type sessionRecord struct {
	AdminID   int64     `json:"adminId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository хранит bearer токены админов в кэше, срок жизни задает TTL ключа.
type Repository struct {
	cache cache.Cache
}

func New(c cache.Cache) *Repository {
	return &Repository{cache: c}
}

func (r *Repository) Save(ctx context.Context, token string, adminID int64, ttl time.Duration) error {
	raw, err := json.Marshal(sessionRecord{AdminID: adminID, CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.cache.Set(ctx, keyPrefix+token, raw, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := r.cache.AddMembers(ctx, adminIndexKey(adminID), ttl, token); err != nil {
		return fmt.Errorf("index session: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, token string) (int64, error) {
	raw, err := r.cache.Get(ctx, keyPrefix+token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return 0, admin.ErrUnauthorized
		}
		return 0, fmt.Errorf("get session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return 0, fmt.Errorf("%w: corrupted session record", admin.ErrUnauthorized)
	}
	return record.AdminID, nil
}

func (r *Repository) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := r.cache.Delete(ctx, keyPrefix+token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteAll отзывает все токены админа. Индекс может содержать уже
// удаленные или истекшие токены, их удаление не ошибка.
func (r *Repository) DeleteAll(ctx context.Context, adminID int64) error {
	indexKey := adminIndexKey(adminID)

	tokens, err := r.cache.Members(ctx, indexKey)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, keyPrefix+token)
	}
	keys = append(keys, indexKey)

	if err := r.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}

func adminIndexKey(adminID int64) string {
	return adminIndexPrefix + strconv.FormatInt(adminID, 10)
}
