package public

import (
	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// getCartSessionID 读取中间件写入的店面会话 ID
func getCartSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.CartSessionContextKey)
	if id, ok := value.(string); exists && ok && id != "" {
		return id, true
	}
	respondError(c, response.CodeBadRequest, "error.cart_session_invalid", nil)
	return "", false
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}
