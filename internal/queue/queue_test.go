package queue

import (
	"context"
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/notify"
)

func TestNotificationTaskRoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 4, 10, 8, 0, 0, 0, time.UTC)
	task, err := NewNotificationTask(NotificationPayload{Session: "s-1", Kind: "success", Message: "Product added successfully!", CreatedAt: createdAt})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskNotification {
		t.Fatalf("task type want %s got %s", TaskNotification, task.Type())
	}
	payload, err := ParseNotificationPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.Session != "s-1" || payload.Kind != "success" || payload.Message != "Product added successfully!" || !payload.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client should report disabled")
	}
	if err := client.EnqueueNotification(context.Background(), notify.Notification{Kind: notify.KindError, Message: "x", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("addr want 127.0.0.1:6379 got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("concurrency want 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("default queue weight want 1 got %v", cfg.Queues)
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2, Concurrency: 3, Queues: map[string]int{"critical": 6}})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 3 || cfg.Queues["critical"] != 6 {
		t.Fatalf("unexpected server cfg: %+v", cfg)
	}
}
