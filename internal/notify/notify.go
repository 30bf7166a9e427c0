// Package notify 提供前端 toast 所需的通知旁路：操作结果不通过返回值传播，而是推送到这里。
package notify

import (
	"context"
	"time"

	"github.com/dujiao-next/storefront/internal/constants"
)

// Kind 通知类型
type Kind string

const (
	KindSuccess Kind = constants.NotificationKindSuccess
	KindError   Kind = constants.NotificationKindError
)

// Valid 判断通知类型是否合法
func (k Kind) Valid() bool {
	return k == KindSuccess || k == KindError
}

// Notification 单条通知
// Session 决定投递到哪个会话的收件箱，不对外输出。
type Notification struct {
	Session   string    `json:"-"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionKey struct{}

// WithSession 在 ctx 中记录通知所属的会话
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFromContext 读取通知所属的会话，缺失时为空串
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	sessionID, _ := ctx.Value(sessionKey{}).(string)
	return sessionID
}

// Notifier 通知发送方（fire-and-forget，不返回错误）
type Notifier interface {
	Notify(ctx context.Context, kind Kind, message string)
}

// Func 函数适配器
type Func func(ctx context.Context, kind Kind, message string)

// Notify 实现 Notifier
func (f Func) Notify(ctx context.Context, kind Kind, message string) {
	if f != nil {
		f(ctx, kind, message)
	}
}

// Nop 丢弃所有通知
var Nop Notifier = Func(func(context.Context, Kind, string) {})

// Multi 依次转发给多个 Notifier
type Multi []Notifier

// Notify 实现 Notifier
func (m Multi) Notify(ctx context.Context, kind Kind, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, kind, message)
		}
	}
}

// Success 发送成功通知
func Success(ctx context.Context, n Notifier, message string) {
	if n != nil {
		n.Notify(ctx, KindSuccess, message)
	}
}

// Error 发送失败通知
func Error(ctx context.Context, n Notifier, message string) {
	if n != nil {
		n.Notify(ctx, KindError, message)
	}
}
