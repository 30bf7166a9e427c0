package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口（演示商品服务使用）
type ProductRepository interface {
	List(ctx context.Context, filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Patch(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
	Replace(ctx context.Context, product *models.Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	SeedIfEmpty(ctx context.Context, products []models.Product) (int, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List 商品列表，返回当前页与总数
func (r *GormProductRepository) List(ctx context.Context, filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"name", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order(orderClause(filter.Sort, filter.Order)).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品，不存在时返回 nil
func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品，ID 为 0 时由数据库分配
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Patch 部分更新商品，不存在时返回 nil
func (r *GormProductRepository) Patch(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	var updated *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !patch.Empty() {
			if err := tx.Model(&product).Updates(patch.Columns()).Error; err != nil {
				return err
			}
		}
		patch.ApplyTo(&product)
		updated = &product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Replace 整体替换商品，返回记录是否存在
func (r *GormProductRepository) Replace(ctx context.Context, product *models.Product) (bool, error) {
	if product == nil || product.ID == 0 {
		return false, nil
	}
	result := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"price":       product.Price,
		"description": product.Description,
		"image":       product.Image,
		"created_at":  product.CreatedAt,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除商品，返回是否删除了记录
func (r *GormProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count 商品总数
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SeedIfEmpty 表为空时写入初始商品，返回写入数量
func (r *GormProductRepository) SeedIfEmpty(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	seeded := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&models.Product{}).Count(&total).Error; err != nil {
			return err
		}
		if total > 0 {
			return nil
		}
		rows := make([]models.Product, len(products))
		copy(rows, products)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		seeded = len(rows)
		return syncIDSequence(tx)
	})
	if err != nil {
		return 0, err
	}
	return seeded, nil
}

// syncIDSequence 显式写入 ID 后，postgres 需要同步自增序列
func syncIDSequence(tx *gorm.DB) error {
	switch dbDialectName(tx) {
	case "postgres", "postgresql":
		return tx.Exec("SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT COALESCE(MAX(id), 1) FROM products))").Error
	default:
		return nil
	}
}
