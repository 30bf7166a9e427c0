package public

import (
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/notify"

	"github.com/gin-gonic/gin"
)

const defaultNotificationLimit = 20

// ListNotifications 当前会话的最近通知，供前端轮询展示 toast
func (h *Handler) ListNotifications(c *gin.Context) {
	sessionID, ok := getCartSessionID(c)
	if !ok {
		return
	}
	if h.Inbox == nil {
		response.Success(c, gin.H{"items": []notify.Notification{}})
		return
	}
	limit := handlershared.ParseLimit(c.Query("limit"), defaultNotificationLimit, h.Config.Notify.InboxCapacity)
	items, err := h.Inbox.Recent(c.Request.Context(), sessionID, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}
	if items == nil {
		items = []notify.Notification{}
	}
	response.Success(c, gin.H{"items": items})
}
