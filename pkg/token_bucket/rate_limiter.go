package token_bucket

import (
	"sync"
	"time"
)

/*
Классический token bucket: токены копятся со скоростью refillRate в секунду
до capacity, каждый пропущенный запрос забирает один токен.
KeyedLimiter держит отдельное ведро на ключ (ip клиента), чтобы один
клиент, перебирающий tracking id, не выедал лимит остальным.
*/

type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (t *TokenBucket) Allow() bool {
	return t.allowAt(time.Now())
}

func (t *TokenBucket) allowAt(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(now)

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
	t.lastRefill = now
}

func (t *TokenBucket) idleSince() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRefill
}

type KeyedLimiter struct {
	capacity   int
	refillRate float64
	idleTTL    time.Duration

	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	lastSweep time.Time
}

// NewKeyedLimiter idleTTL - через сколько простоя ведро ключа удаляется.
func NewKeyedLimiter(capacity int, refillRate float64, idleTTL time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		capacity:   capacity,
		refillRate: refillRate,
		idleTTL:    idleTTL,
		buckets:    make(map[string]*TokenBucket),
		lastSweep:  time.Now(),
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	return k.bucket(key, time.Now()).Allow()
}

// Len количество ключей, за которыми сейчас следит лимитер.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *KeyedLimiter) bucket(key string, now time.Time) *TokenBucket {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.idleTTL > 0 && now.Sub(k.lastSweep) >= k.idleTTL {
		k.sweep(now)
	}

	b, ok := k.buckets[key]
	if !ok {
		b = NewTokenBucket(k.capacity, k.refillRate)
		k.buckets[key] = b
	}
	return b
}

func (k *KeyedLimiter) sweep(now time.Time) {
	for key, b := range k.buckets {
		if now.Sub(b.idleSince()) >= k.idleTTL {
			delete(k.buckets, key)
		}
	}
	k.lastSweep = now
}
