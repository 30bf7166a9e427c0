package worker

import (
	"context"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/notify"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotification, c.handleNotification)
}

func (c *Consumer) handleNotification(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseNotificationPayload(task)
	if err != nil {
		logger.Warnw("worker_notification_unmarshal_failed", "error", err)
		return err
	}
	kind := notify.Kind(strings.TrimSpace(payload.Kind))
	message := strings.TrimSpace(payload.Message)
	if !kind.Valid() || message == "" {
		logger.Debugw("worker_notification_skip_invalid_payload", "kind", payload.Kind)
		return nil
	}
	if c.Inbox == nil {
		logger.Warnw("worker_notification_skip_inbox_nil", "kind", kind)
		return nil
	}
	createdAt := payload.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	if err := c.Inbox.Push(ctx, notify.Notification{Session: payload.Session, Kind: kind, Message: message, CreatedAt: createdAt}); err != nil {
		logger.Warnw("worker_notification_push_failed", "kind", kind, "error", err)
		return err
	}
	return nil
}
