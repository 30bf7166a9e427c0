package public

import "github.com/dujiao-next/storefront/internal/provider"

// Handler 店面公开接口处理器入口
// 说明：商品、购物车与通知接口，购物车按会话 Cookie 区分。
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
