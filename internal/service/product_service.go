package service

import (
	"context"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/catalog"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/models"
)

// CatalogStore 商品数据访问层，catalog.Store 实现该接口
type CatalogStore interface {
	ProductLookup
	ListAll(ctx context.Context) []models.Product
	ListLatest(ctx context.Context, n int) []models.Product
	Create(ctx context.Context, input models.ProductInput) (models.Product, bool)
	Update(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, bool)
	Delete(ctx context.Context, id int64) bool
	Mode() catalog.Mode
}

// CreateProductInput 新建商品表单输入
type CreateProductInput struct {
	Name        string       `json:"name" validate:"min=3,max=255"`
	Price       models.Money `json:"price" validate:"gt=0"`
	Description string       `json:"description" validate:"min=10"`
	Image       string       `json:"image" validate:"omitempty,url"`
}

// UpdateProductInput 商品部分更新输入
type UpdateProductInput struct {
	Name        *string       `json:"name" validate:"omitnil,min=3,max=255"`
	Price       *models.Money `json:"price" validate:"omitnil,gt=0"`
	Description *string       `json:"description" validate:"omitnil,min=10"`
	Image       *string       `json:"image" validate:"omitnil,url"`
}

// CatalogStatus 数据访问层状态
type CatalogStatus struct {
	Mode     catalog.Mode `json:"mode"`
	Fallback bool         `json:"fallback"`
}

// ProductService 店面商品服务，建立在带兜底的数据访问层之上
type ProductService struct {
	store CatalogStore
	now   func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(store CatalogStore) *ProductService {
	return &ProductService{store: store, now: time.Now}
}

// List 全部商品
func (s *ProductService) List(ctx context.Context) []models.Product {
	return s.store.ListAll(ctx)
}

// Latest 最新商品，limit 不合法时使用默认数量
func (s *ProductService) Latest(ctx context.Context, limit int) []models.Product {
	if limit <= 0 {
		limit = constants.LatestProductsLimit
	}
	return s.store.ListLatest(ctx, limit)
}

// Get 商品详情
func (s *ProductService) Get(ctx context.Context, id int64) (models.Product, error) {
	if id <= 0 {
		return models.Product{}, ErrProductNotFound
	}
	product, ok := s.store.GetByID(ctx, id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

// Create 校验表单并创建商品，空图片使用占位图，创建时间为当前时间
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Image = strings.TrimSpace(input.Image)
	if err := validateStruct(ErrProductInvalid, input); err != nil {
		return models.Product{}, err
	}
	image := input.Image
	if image == "" {
		image = models.PlaceholderImage(constants.PlaceholderImageSize)
	}
	product, ok := s.store.Create(ctx, models.ProductInput{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       image,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	})
	if !ok {
		return models.Product{}, ErrProductNotSaved
	}
	return product, nil
}

// Update 部分更新商品；显式传入空图片时重置为占位图
func (s *ProductService) Update(ctx context.Context, id int64, input UpdateProductInput) (models.Product, error) {
	input.Name = trimmedPtr(input.Name)
	input.Description = trimmedPtr(input.Description)
	input.Image = trimmedPtr(input.Image)
	if input.Image != nil && *input.Image == "" {
		placeholder := models.PlaceholderImage(constants.PlaceholderImageSize)
		input.Image = &placeholder
	}
	if err := validateStruct(ErrProductInvalid, input); err != nil {
		return models.Product{}, err
	}
	patch := models.ProductPatch{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
	}
	if patch.Empty() {
		return models.Product{}, ErrProductPatchNone
	}
	if id <= 0 {
		return models.Product{}, ErrProductNotFound
	}
	product, ok := s.store.Update(ctx, id, patch)
	if !ok {
		return models.Product{}, ErrProductNotSaved
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 || !s.store.Delete(ctx, id) {
		return ErrProductNotSaved
	}
	return nil
}

// Status 当前数据访问模式
func (s *ProductService) Status() CatalogStatus {
	mode := s.store.Mode()
	return CatalogStatus{Mode: mode, Fallback: mode == catalog.ModeFallback}
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
