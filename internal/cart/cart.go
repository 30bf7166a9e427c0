// Package cart 购物车状态引擎：按商品 ID 合并行项目，派生数量与总价。
// Cart 不是并发安全的，由单个持有者（会话）串行修改。
package cart

import (
	"encoding/json"

	"github.com/dujiao-next/storefront/internal/models"

	"github.com/shopspring/decimal"
)

// MaxQuantity 单行数量上限，累加超出时截断
const MaxQuantity = 999

// LineItem 购物车行项目，1 <= Quantity <= MaxQuantity
type LineItem struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal 行小计 price × quantity
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Decimal.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart 购物车，行项目按首次加入顺序排列，每个商品 ID 至多一行
type Cart struct {
	items []LineItem
}

// New 创建空购物车
func New() *Cart {
	return &Cart{}
}

// Add 加入商品；已存在时累加数量且不改变顺序。quantity < 1 按 1 处理，结果截断到 MaxQuantity。
func (c *Cart) Add(product models.Product, quantity int) {
	quantity = clampQuantity(quantity)
	if idx := c.indexOf(product.ID); idx >= 0 {
		// 两个加数都不超过 MaxQuantity，不会溢出
		c.items[idx].Quantity = min(c.items[idx].Quantity+quantity, MaxQuantity)
		return
	}
	c.items = append(c.items, LineItem{Product: product, Quantity: quantity})
}

// Remove 删除商品行，不存在时为空操作
func (c *Cart) Remove(productID int64) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// UpdateQuantity 设置数量（非累加，截断到 MaxQuantity）；quantity < 1 时删除该行，不存在时为空操作
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity < 1 {
		c.Remove(productID)
		return
	}
	if idx := c.indexOf(productID); idx >= 0 {
		c.items[idx].Quantity = min(quantity, MaxQuantity)
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.items = nil
}

// Items 返回行项目副本
func (c *Cart) Items() []LineItem {
	return append([]LineItem{}, c.items...)
}

// Len 行数
func (c *Cart) Len() int {
	return len(c.items)
}

// Empty 是否为空
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Contains 是否包含商品
func (c *Cart) Contains(productID int64) bool {
	return c.indexOf(productID) >= 0
}

// Quantity 商品数量，不存在时为 0
func (c *Cart) Quantity(productID int64) int {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.items[idx].Quantity
	}
	return 0
}

// ItemCount 所有行数量之和，每次读取时重新计算
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice 所有行 price × quantity 之和，每次读取时重新计算
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Total 总价（2 位小数金额）
func (c *Cart) Total() models.Money {
	return models.NewMoneyFromDecimal(c.TotalPrice())
}

func clampQuantity(quantity int) int {
	switch {
	case quantity < 1:
		return 1
	case quantity > MaxQuantity:
		return MaxQuantity
	default:
		return quantity
	}
}

func (c *Cart) indexOf(productID int64) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

type snapshot struct {
	Items []LineItem `json:"items"`
}

// MarshalJSON 序列化为快照，用于会话存储
func (c *Cart) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(snapshot{Items: items})
}

// UnmarshalJSON 从快照恢复；丢弃数量非法的行，重复商品合并数量并截断到上限
func (c *Cart) UnmarshalJSON(b []byte) error {
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return err
	}
	c.items = nil
	for _, item := range snap.Items {
		if item.Quantity < 1 {
			continue
		}
		c.Add(item.Product, item.Quantity)
	}
	return nil
}
