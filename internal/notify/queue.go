package notify

import (
	"context"
	"time"

	"github.com/dujiao-next/storefront/internal/logger"
)

// Enqueuer 异步投递通知的队列客户端
type Enqueuer interface {
	Enabled() bool
	EnqueueNotification(ctx context.Context, n Notification) error
}

// Queue 通过异步队列投递通知，队列不可用时直接写入 fallback
type Queue struct {
	enqueuer Enqueuer
	fallback Notifier
	now      func() time.Time
}

// NewQueue 创建队列通知器
func NewQueue(enqueuer Enqueuer, fallback Notifier) *Queue {
	if fallback == nil {
		fallback = Nop
	}
	return &Queue{enqueuer: enqueuer, fallback: fallback, now: time.Now}
}

// Notify 实现 Notifier
func (q *Queue) Notify(ctx context.Context, kind Kind, message string) {
	if q.enqueuer == nil || !q.enqueuer.Enabled() {
		q.fallback.Notify(ctx, kind, message)
		return
	}
	n := Notification{Session: SessionFromContext(ctx), Kind: kind, Message: message, CreatedAt: q.now()}
	if err := q.enqueuer.EnqueueNotification(ctx, n); err != nil {
		logger.Warnw("notify_enqueue_failed", "kind", kind, "error", err)
		q.fallback.Notify(ctx, kind, message)
	}
}
