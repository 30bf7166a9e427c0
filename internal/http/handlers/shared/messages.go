package shared

// messages 错误消息键到展示文案的映射
var messages = map[string]string{
	"error.bad_request":               "Invalid request",
	"error.internal":                  "Internal server error",
	"error.not_found":                 "Resource not found",
	"error.rate_limited":              "Too many requests, please retry in %d seconds",
	"error.rate_limit_unavailable":    "Rate limiter unavailable",
	"error.product_id_invalid":        "Invalid product id",
	"error.product_not_found":         "Product not found",
	"error.product_invalid":           "Product data is invalid",
	"error.product_patch_empty":       "No fields to update",
	"error.product_save_failed":       "Failed to save product",
	"error.cart_session_invalid":      "Invalid cart session",
	"error.cart_quantity_invalid":     "Invalid quantity",
	"error.cart_empty":                "Your cart is empty",
	"error.cart_conflict":             "Cart was modified concurrently, please retry",
	"error.cart_update_failed":        "Failed to update cart",
	"error.cart_fetch_failed":         "Failed to load cart",
	"error.checkout_failed":           "Failed to place order",
	"error.notification_fetch_failed": "Failed to load notifications",
}

// Message 根据键返回文案，未知键原样返回
func Message(key string) string {
	if msg, ok := messages[key]; ok {
		return msg
	}
	return key
}
