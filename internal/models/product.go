package models

import (
	"fmt"
	"strings"
	"time"
)

const placeholderImageURL = "https://placehold.co/%s?text=No+Image"

// Product 商品记录（由商品服务或演示目录分配 ID）
type Product struct {
	ID          int64  `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string `gorm:"type:varchar(255);not null" json:"name"`                    // 名称
	Price       Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 价格
	Description string `gorm:"type:text" json:"description"`                              // 描述
	Image       string `gorm:"type:varchar(1024)" json:"image"`                           // 图片 URL，可为空
	CreatedAt   string `gorm:"column:created_at;type:varchar(64);index" json:"createdAt"` // ISO-8601 创建时间，仅用于排序
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// CreatedTime 解析创建时间，无法解析时返回 false
func (p Product) CreatedTime() (time.Time, bool) {
	raw := strings.TrimSpace(p.CreatedAt)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ProductInput 不含 ID 的商品（创建请求体）
type ProductInput struct {
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CreatedAt   string `json:"createdAt"`
}

// WithID 使用指定 ID 生成商品记录
func (in ProductInput) WithID(id int64) Product {
	return Product{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   in.CreatedAt,
	}
}

// ProductPatch 商品部分更新，仅非 nil 字段生效
type ProductPatch struct {
	Name        *string `json:"name,omitempty"`
	Price       *Money  `json:"price,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	CreatedAt   *string `json:"createdAt,omitempty"`
}

// Empty 是否没有任何待更新字段
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil && p.Image == nil && p.CreatedAt == nil
}

// ApplyTo 将部分字段合并到商品
func (p ProductPatch) ApplyTo(product *Product) {
	if product == nil {
		return
	}
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.CreatedAt != nil {
		product.CreatedAt = *p.CreatedAt
	}
}

// Columns 转换为数据库更新字段
func (p ProductPatch) Columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Image != nil {
		updates["image"] = *p.Image
	}
	if p.CreatedAt != nil {
		updates["created_at"] = *p.CreatedAt
	}
	return updates
}

// PlaceholderImage 返回展示层使用的占位图，size 形如 "400x400"
func PlaceholderImage(size string) string {
	size = strings.TrimSpace(size)
	if size == "" {
		size = "400x400"
	}
	return fmt.Sprintf(placeholderImageURL, size)
}
