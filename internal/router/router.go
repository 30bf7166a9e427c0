package router

import (
	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	productapihandlers "github.com/dujiao-next/storefront/internal/http/handlers/productapi"
	publichandlers "github.com/dujiao-next/storefront/internal/http/handlers/public"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化店面路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := newEngine(cfg)

	publicHandler := publichandlers.New(c)
	productWriteRule := RateLimitRule{
		Prefix:        cache.BuildKey("rate:product_write"),
		WindowSeconds: cfg.Security.ProductWriteRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ProductWriteRateLimit.MaxRequests,
	}
	productWriteLimit := RateLimitMiddleware(cache.Client(), productWriteRule, KeyByIP)

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	// API 路由组（按店面会话）
	apiV1 := r.Group("/api/v1")
	apiV1.Use(CartSessionMiddleware(cfg.Cart))
	{
		// 商品接口
		products := apiV1.Group("/products")
		{
			products.GET("", publicHandler.ListProducts)
			products.GET("/latest", publicHandler.LatestProducts)
			products.GET("/:id", publicHandler.GetProduct)
			products.POST("", productWriteLimit, publicHandler.CreateProduct)
			products.PATCH("/:id", productWriteLimit, publicHandler.UpdateProduct)
			products.DELETE("/:id", productWriteLimit, publicHandler.DeleteProduct)
		}
		apiV1.GET("/catalog/status", publicHandler.CatalogStatus)
		apiV1.GET("/notifications", publicHandler.ListNotifications)

		// 购物车接口
		cart := apiV1.Group("/cart")
		{
			cart.GET("", publicHandler.GetCart)
			cart.DELETE("", publicHandler.ClearCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PATCH("/items/:product_id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:product_id", publicHandler.DeleteCartItem)
			cart.POST("/checkout", publicHandler.Checkout)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, handlershared.Message("error.not_found"))
	})

	return r
}

// SetupCatalogRouter 初始化演示商品服务路由（json-server 兼容）
func SetupCatalogRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := newEngine(cfg)

	productHandler := productapihandlers.New(c)
	products := r.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", productHandler.Create)
		products.PUT("/:id", productHandler.Replace)
		products.PATCH("/:id", productHandler.Patch)
		products.DELETE("/:id", productHandler.Delete)
	}
	return r
}

func newEngine(cfg *config.Config) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log.Named("http")))
	r.Use(CORSMiddleware(cfg.CORS))
	return r
}
