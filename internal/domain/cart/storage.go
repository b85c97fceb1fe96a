// internal/domain/cart/storage.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCorruptSnapshot is returned by Load when the stored bytes are not a cart
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// Storage is the durable key-value slot holding serialized carts
type Storage interface {
	Load(ctx context.Context, key string) (Cart, bool, error)
	Save(ctx context.Context, key string, c Cart) error
}

// SessionKey builds the storage key of a session's cart
func SessionKey(prefix, sessionID string) string {
	return fmt.Sprintf("%s:%s", prefix, sessionID)
}

// MemoryStorage keeps serialized carts in process memory
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(ctx context.Context, key string) (Cart, bool, error) {
	m.mu.RLock()
	data, ok := m.carts[key]
	m.mu.RUnlock()

	if !ok {
		return Cart{}, false, nil
	}
	return decode(data)
}

func (m *MemoryStorage) Save(ctx context.Context, key string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.carts[key] = data
	m.mu.Unlock()
	return nil
}

// redisCmdable is the subset of the go-redis client used by RedisStorage
type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStorage keeps serialized carts in redis with a sliding expiration
type RedisStorage struct {
	client redisCmdable
	ttl    time.Duration
}

// NewRedisStorage creates a redis-backed storage. A zero ttl keeps carts forever.
func NewRedisStorage(client redisCmdable, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (r *RedisStorage) Load(ctx context.Context, key string) (Cart, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, false, nil
	}
	if err != nil {
		return Cart{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return decode(data)
}

func (r *RedisStorage) Save(ctx context.Context, key string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func decode(data []byte) (Cart, bool, error) {
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, false, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	return c, true, nil
}
