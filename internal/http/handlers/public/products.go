package public

import (
	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

const maxLatestLimit = 50

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	products := h.ProductService.List(c.Request.Context())
	response.Success(c, gin.H{
		"items":    newProductViews(products),
		"fallback": h.ProductService.Status().Fallback,
	})
}

// LatestProducts 最新商品
func (h *Handler) LatestProducts(c *gin.Context) {
	limit := handlershared.ParseLimit(c.Query("limit"), constants.LatestProductsLimit, maxLatestLimit)
	products := h.ProductService.Latest(c.Request.Context(), limit)
	response.Success(c, gin.H{
		"items":    newProductViews(products),
		"fallback": h.ProductService.Status().Fallback,
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParseID(c.Param("id"))
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	product, err := h.ProductService.Get(c.Request.Context(), id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, newProductView(product))
}

// CreateProduct 新建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), req)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Product added successfully!", newProductView(product))
}

// UpdateProduct 部分更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := handlershared.ParseID(c.Param("id"))
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	var req service.UpdateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, newProductView(product))
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := handlershared.ParseID(c.Param("id"))
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CatalogStatus 数据访问层模式
func (h *Handler) CatalogStatus(c *gin.Context) {
	response.Success(c, h.ProductService.Status())
}
