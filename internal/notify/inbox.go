package notify

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/dujiao-next/storefront/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	defaultInboxCapacity = 50
	defaultInboxSessions = 1024
	defaultInboxTTL      = 24 * time.Hour
)

// Inbox 按会话划分的最近通知收件箱，供界面轮询
type Inbox interface {
	Notifier
	Push(ctx context.Context, n Notification) error
	Recent(ctx context.Context, sessionID string, limit int) ([]Notification, error)
}

type memoryBucket struct {
	items   []Notification
	touched time.Time
}

// MemoryInbox 进程内收件箱，每个会话一个环形缓冲
type MemoryInbox struct {
	mu          sync.Mutex
	buckets     map[string]*memoryBucket
	capacity    int
	maxSessions int
	now         func() time.Time
}

// NewMemoryInbox 创建内存收件箱
func NewMemoryInbox(capacity int) *MemoryInbox {
	if capacity <= 0 {
		capacity = defaultInboxCapacity
	}
	return &MemoryInbox{
		buckets:     make(map[string]*memoryBucket),
		capacity:    capacity,
		maxSessions: defaultInboxSessions,
		now:         time.Now,
	}
}

// Notify 实现 Notifier，会话取自 ctx
func (b *MemoryInbox) Notify(ctx context.Context, kind Kind, message string) {
	_ = b.Push(ctx, Notification{Session: SessionFromContext(ctx), Kind: kind, Message: message, CreatedAt: b.now()})
}

// Push 写入一条通知，超出容量时丢弃该会话最旧的通知
func (b *MemoryInbox) Push(_ context.Context, n Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	bucket, ok := b.buckets[n.Session]
	if !ok {
		b.evictLocked()
		bucket = &memoryBucket{}
		b.buckets[n.Session] = bucket
	}
	bucket.touched = b.now()
	bucket.items = append(bucket.items, n)
	if overflow := len(bucket.items) - b.capacity; overflow > 0 {
		bucket.items = append([]Notification(nil), bucket.items[overflow:]...)
	}
	return nil
}

// Recent 返回会话最近的通知（新的在前）
func (b *MemoryInbox) Recent(_ context.Context, sessionID string, limit int) ([]Notification, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bucket, ok := b.buckets[sessionID]
	if !ok {
		return []Notification{}, nil
	}
	items := bucket.items
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}
	result := make([]Notification, 0, limit)
	for i := len(items) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, items[i])
	}
	return result, nil
}

// evictLocked 会话数达到上限时淘汰最久未写入的会话，调用方需持有锁
func (b *MemoryInbox) evictLocked() {
	if len(b.buckets) < b.maxSessions {
		return
	}
	var oldest string
	var oldestAt time.Time
	first := true
	for sessionID, bucket := range b.buckets {
		if first || bucket.touched.Before(oldestAt) {
			oldest, oldestAt, first = sessionID, bucket.touched, false
		}
	}
	delete(b.buckets, oldest)
}

// RedisInbox 基于 Redis 列表的收件箱，多实例共享，每个会话一个键
type RedisInbox struct {
	client   *redis.Client
	prefix   string
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewRedisInbox 创建 Redis 收件箱；ttl 为会话收件箱的空闲过期时间
func NewRedisInbox(client *redis.Client, prefix string, capacity int, ttl time.Duration) *RedisInbox {
	if capacity <= 0 {
		capacity = defaultInboxCapacity
	}
	if ttl <= 0 {
		ttl = defaultInboxTTL
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "sf"
	}
	return &RedisInbox{
		client:   client,
		prefix:   prefix,
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (b *RedisInbox) key(sessionID string) string {
	if sessionID == "" {
		return b.prefix + ":notifications"
	}
	return b.prefix + ":notifications:" + sessionID
}

// Notify 实现 Notifier，会话取自 ctx
func (b *RedisInbox) Notify(ctx context.Context, kind Kind, message string) {
	n := Notification{Session: SessionFromContext(ctx), Kind: kind, Message: message, CreatedAt: b.now()}
	if err := b.Push(ctx, n); err != nil {
		logger.Warnw("notify_inbox_push_failed", "kind", kind, "error", err)
	}
}

// Push 写入一条通知并刷新会话收件箱的过期时间
func (b *RedisInbox) Push(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	key := b.key(n.Session)
	pipe := b.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, int64(b.capacity-1))
	pipe.Expire(ctx, key, b.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent 返回会话最近的通知（新的在前）
func (b *RedisInbox) Recent(ctx context.Context, sessionID string, limit int) ([]Notification, error) {
	if limit <= 0 || limit > b.capacity {
		limit = b.capacity
	}
	values, err := b.client.LRange(ctx, b.key(sessionID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	result := make([]Notification, 0, len(values))
	for _, raw := range values {
		n := Notification{Session: sessionID}
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			logger.Debugw("notify_inbox_skip_invalid", "error", err)
			continue
		}
		result = append(result, n)
	}
	return result, nil
}
