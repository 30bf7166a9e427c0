package provider

import (
	"context"
	"strings"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/catalog"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/notify"
	"github.com/dujiao-next/storefront/internal/queue"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Notifications
	Inbox    notify.Inbox
	Notifier notify.Notifier

	// Data access
	CatalogClient *catalog.Client
	Store         *catalog.Store
	CartRepo      repository.CartRepository
	ProductRepo   repository.ProductRepository

	// Services
	ProductService        *service.ProductService
	CartService           *service.CartService
	ProductCatalogService *service.ProductCatalogService
}

// NewContainer 初始化店面容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(context.Background(), &cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 通知旁路
	c.initNotifications()

	// 2. 数据访问层
	c.initDataAccess()

	// 3. 初始化 Services
	c.initServices()

	return c
}

// NewCatalogContainer 初始化演示商品服务容器
func NewCatalogContainer(cfg *config.Config, db *gorm.DB) *Container {
	c := &Container{Config: cfg}
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductCatalogService = service.NewProductCatalogService(c.ProductRepo)
	return c
}

func (c *Container) initNotifications() {
	if client := cache.Client(); client != nil {
		c.Inbox = notify.NewRedisInbox(client, cache.Prefix(), c.Config.Notify.InboxCapacity, c.Config.Cart.SessionTTL())
	} else {
		c.Inbox = notify.NewMemoryInbox(c.Config.Notify.InboxCapacity)
	}
	// 队列可用时由 worker 写入收件箱，否则直接写入
	var delivery notify.Notifier = c.Inbox
	if c.QueueClient.Enabled() {
		delivery = notify.NewQueue(c.QueueClient, c.Inbox)
	}
	c.Notifier = notify.Multi{notify.Log{}, delivery}
}

func (c *Container) initDataAccess() {
	mode := catalog.ModeLive
	if c.Config.Catalog.StartFallback {
		mode = catalog.ModeFallback
	}
	var remote catalog.Remote
	if baseURL := strings.TrimSpace(c.Config.Catalog.BaseURL); baseURL != "" {
		c.CatalogClient = catalog.NewClient(baseURL, c.Config.Catalog.Timeout())
		remote = c.CatalogClient
	}
	c.Store = catalog.NewStore(remote, c.Notifier, catalog.WithConfig(catalog.NewDataAccessConfig(mode)))

	ttl := c.Config.Cart.SessionTTL()
	switch strings.ToLower(strings.TrimSpace(c.Config.Cart.Store)) {
	case "redis":
		if client := cache.Client(); client != nil {
			c.CartRepo = repository.NewRedisCartRepository(client, cache.Prefix(), ttl)
			return
		}
		logger.Warnw("provider_cart_store_redis_unavailable", "fallback", "memory")
	}
	c.CartRepo = repository.NewMemoryCartRepository(ttl)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.Store)
	c.CartService = service.NewCartService(c.CartRepo, c.Store, c.Notifier)
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
