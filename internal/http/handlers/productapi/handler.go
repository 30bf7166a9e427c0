// Package productapi 实现演示商品服务的 json-server 兼容接口：
// 响应为裸 JSON（无统一包装），错误通过 HTTP 状态码表达。
package productapi

import (
	"errors"
	"net/http"
	"strconv"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

const totalCountHeader = "X-Total-Count"

// Handler 演示商品服务处理器
type Handler struct {
	*provider.Container
}

// New 创建演示商品服务处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// List 商品列表，支持 _page/_limit/_sort/_order/q
func (h *Handler) List(c *gin.Context) {
	filter := repository.ProductListFilter{
		Page:     handlershared.ParseLimit(c.Query("_page"), 0, 0),
		PageSize: handlershared.ParseLimit(c.Query("_limit"), 0, 1000),
		Search:   c.Query("q"),
		Sort:     c.Query("_sort"),
		Order:    c.Query("_order"),
	}
	if filter.Page > 0 && filter.PageSize == 0 {
		filter.PageSize = 10
	}
	products, total, err := h.ProductCatalogService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header(totalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, products)
}

// Get 商品详情
func (h *Handler) Get(c *gin.Context) {
	id, ok := handlershared.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	product, err := h.ProductCatalogService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create 创建商品
func (h *Handler) Create(c *gin.Context) {
	var req service.ProductRecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RequestLog(c).Debugw("productapi_bind_failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	product, err := h.ProductCatalogService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Replace 整体替换商品
func (h *Handler) Replace(c *gin.Context) {
	id, ok := handlershared.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	var req service.ProductRecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	product, err := h.ProductCatalogService.Replace(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Patch 部分更新商品
func (h *Handler) Patch(c *gin.Context) {
	id, ok := handlershared.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	var req service.ProductRecordPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	product, err := h.ProductCatalogService.Patch(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete 删除商品
func (h *Handler) Delete(c *gin.Context) {
	id, ok := handlershared.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	if err := h.ProductCatalogService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Err.Error(), "fields": verr.Fields})
	case errors.Is(err, service.ErrProductInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{})
	default:
		handlershared.RequestLog(c).Errorw("productapi_error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
