package notify

import (
	"context"

	"github.com/dujiao-next/storefront/internal/logger"
)

// Log 将通知写入结构化日志
type Log struct{}

// Notify 实现 Notifier
func (Log) Notify(ctx context.Context, kind Kind, message string) {
	log := logger.Named("notify").With("session", SessionFromContext(ctx))
	if kind == KindError {
		log.Warnw("notification", "kind", kind, "message", message)
		return
	}
	log.Infow("notification", "kind", kind, "message", message)
}
