package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dujiao-next/storefront/internal/cart"

	"github.com/redis/go-redis/v9"
)

// ErrCartConflict 并发修改重试次数耗尽
var ErrCartConflict = errors.New("cart modified concurrently")

const cartUpdateMaxRetries = 5

// CartMutation 对购物车的一次修改
type CartMutation func(c *cart.Cart) error

// CartRepository 会话购物车存储接口
type CartRepository interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Update(ctx context.Context, sessionID string, fn CartMutation) (*cart.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

type memoryCartEntry struct {
	cart      *cart.Cart
	expiresAt time.Time
}

// MemoryCartRepository 进程内实现，单实例部署使用
type MemoryCartRepository struct {
	mu      sync.Mutex
	entries map[string]memoryCartEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCartRepository 创建内存购物车仓库
func NewMemoryCartRepository(ttl time.Duration) *MemoryCartRepository {
	return &MemoryCartRepository{
		entries: make(map[string]memoryCartEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Load 读取购物车，不存在或已过期时返回空购物车
func (r *MemoryCartRepository) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneCart(r.lookup(sessionID))
}

// Save 覆盖保存购物车
func (r *MemoryCartRepository) Save(_ context.Context, sessionID string, c *cart.Cart) error {
	snapshot, err := cloneCart(c)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(sessionID, snapshot)
	return nil
}

// Update 在锁内执行修改并保存，同一会话的修改串行执行
func (r *MemoryCartRepository) Update(_ context.Context, sessionID string, fn CartMutation) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, err := cloneCart(r.lookup(sessionID))
	if err != nil {
		return nil, err
	}
	if fn != nil {
		if err := fn(current); err != nil {
			return nil, err
		}
	}
	r.store(sessionID, current)
	return cloneCart(current)
}

// Delete 删除会话购物车
func (r *MemoryCartRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
	return nil
}

// lookup 调用方需持有锁
func (r *MemoryCartRepository) lookup(sessionID string) *cart.Cart {
	entry, ok := r.entries[sessionID]
	if !ok {
		return cart.New()
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		delete(r.entries, sessionID)
		return cart.New()
	}
	return entry.cart
}

func (r *MemoryCartRepository) store(sessionID string, c *cart.Cart) {
	entry := memoryCartEntry{cart: c}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}
	r.entries[sessionID] = entry
	r.evictExpired()
}

func (r *MemoryCartRepository) evictExpired() {
	now := r.now()
	for id, entry := range r.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(r.entries, id)
		}
	}
}

// RedisCartRepository Redis 实现，购物车以 JSON 快照保存，每次写入刷新 TTL
type RedisCartRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCartRepository 创建 Redis 购物车仓库
func NewRedisCartRepository(client *redis.Client, prefix string, ttl time.Duration) *RedisCartRepository {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "sf"
	}
	return &RedisCartRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisCartRepository) key(sessionID string) string {
	return r.prefix + ":cart:" + sessionID
}

// Load 读取购物车，不存在时返回空购物车
func (r *RedisCartRepository) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return r.read(ctx, r.client, sessionID)
}

// Save 覆盖保存购物车并刷新 TTL
func (r *RedisCartRepository) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	if c == nil {
		c = cart.New()
	}
	payload, err := c.MarshalJSON()
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(sessionID), payload, r.ttl).Err()
}

// Update 使用 WATCH 乐观锁执行修改，冲突时重试
func (r *RedisCartRepository) Update(ctx context.Context, sessionID string, fn CartMutation) (*cart.Cart, error) {
	key := r.key(sessionID)
	var result *cart.Cart
	txf := func(tx *redis.Tx) error {
		current, err := r.read(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(current); err != nil {
				return err
			}
		}
		payload, err := current.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			result = current
		}
		return err
	}

	for attempt := 0; attempt < cartUpdateMaxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrCartConflict
}

// Delete 删除会话购物车
func (r *RedisCartRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

func (r *RedisCartRepository) read(ctx context.Context, cmd redis.Cmdable, sessionID string) (*cart.Cart, error) {
	raw, err := cmd.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, err
	}
	c := cart.New()
	if err := c.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return c, nil
}

// cloneCart 通过快照复制，避免调用方持有仓库内部状态
func cloneCart(src *cart.Cart) (*cart.Cart, error) {
	if src == nil {
		return cart.New(), nil
	}
	payload, err := src.MarshalJSON()
	if err != nil {
		return nil, err
	}
	dst := cart.New()
	if err := dst.UnmarshalJSON(payload); err != nil {
		return nil, err
	}
	return dst, nil
}
