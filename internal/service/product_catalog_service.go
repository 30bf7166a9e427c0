package service

import (
	"context"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/catalog"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
)

// ProductRecordInput 演示商品服务的创建/替换请求体
type ProductRecordInput struct {
	Name        string       `json:"name" validate:"required,max=255"`
	Price       models.Money `json:"price" validate:"gte=0"`
	Description string       `json:"description"`
	Image       string       `json:"image" validate:"omitempty,url"`
	CreatedAt   string       `json:"createdAt" validate:"omitempty,max=64"`
}

// ProductRecordPatch 演示商品服务的部分更新请求体
type ProductRecordPatch struct {
	Name        *string       `json:"name" validate:"omitnil,min=1,max=255"`
	Price       *models.Money `json:"price" validate:"omitnil,gte=0"`
	Description *string       `json:"description"`
	Image       *string       `json:"image" validate:"omitempty,url"`
	CreatedAt   *string       `json:"createdAt" validate:"omitempty,max=64"`
}

// ProductCatalogService 演示商品服务（json-server 兼容的 /products 资源）
type ProductCatalogService struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductCatalogService 创建演示商品服务
func NewProductCatalogService(repo repository.ProductRepository) *ProductCatalogService {
	return &ProductCatalogService{repo: repo, now: time.Now}
}

// Seed 表为空时写入演示目录
func (s *ProductCatalogService) Seed(ctx context.Context) (int, error) {
	return s.repo.SeedIfEmpty(ctx, catalog.DemoProducts())
}

// List 商品列表
func (s *ProductCatalogService) List(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(ctx, filter)
}

// Get 商品详情
func (s *ProductCatalogService) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品，未提供创建时间时使用当前时间
func (s *ProductCatalogService) Create(ctx context.Context, input ProductRecordInput) (*models.Product, error) {
	product, err := s.buildRecord(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Replace 整体替换商品
func (s *ProductCatalogService) Replace(ctx context.Context, id int64, input ProductRecordInput) (*models.Product, error) {
	product, err := s.buildRecord(input)
	if err != nil {
		return nil, err
	}
	product.ID = id
	ok, err := s.repo.Replace(ctx, &product)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Patch 部分更新商品
func (s *ProductCatalogService) Patch(ctx context.Context, id int64, input ProductRecordPatch) (*models.Product, error) {
	input.Name = trimmedPtr(input.Name)
	input.Image = trimmedPtr(input.Image)
	input.CreatedAt = trimmedPtr(input.CreatedAt)
	if err := validateStruct(ErrProductInvalid, input); err != nil {
		return nil, err
	}
	product, err := s.repo.Patch(ctx, id, models.ProductPatch{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		CreatedAt:   input.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductCatalogService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductCatalogService) buildRecord(input ProductRecordInput) (models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Image = strings.TrimSpace(input.Image)
	input.CreatedAt = strings.TrimSpace(input.CreatedAt)
	if err := validateStruct(ErrProductInvalid, input); err != nil {
		return models.Product{}, err
	}
	if input.CreatedAt == "" {
		input.CreatedAt = s.now().UTC().Format(time.RFC3339)
	}
	return models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		CreatedAt:   input.CreatedAt,
	}, nil
}
