package constants

// 通知类型常量
const (
	NotificationKindSuccess = "success"
	NotificationKindError   = "error"
)

// 队列常量
const (
	QueueDefault     = "default"
	TaskNotification = "notification:deliver"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sf"
)

// 购物车会话常量
const (
	CartSessionCookieDefault = "sf_session"
	CartSessionHeader        = "X-Cart-Session"
	CartSessionContextKey    = "cart_session_id"
)

// 运行模式常量
const (
	ModeAll     = "all"
	ModeAPI     = "api"
	ModeWorker  = "worker"
	ModeCatalog = "catalog"
)

// 商品展示常量
const (
	PlaceholderImageSize = "400x400"
	LatestProductsLimit  = 6
)
