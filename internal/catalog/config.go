package catalog

import "github.com/dujiao-next/storefront/internal/models"

// Mode 数据访问模式
type Mode string

const (
	ModeLive     Mode = "live"
	ModeFallback Mode = "fallback"
)

// DataAccessConfig 数据访问状态，由单个 Store 持有
// Mode 一旦切换为 fallback 在整个会话内不再回到 live。
type DataAccessConfig struct {
	Mode   Mode
	nextID int64
}

// NewDataAccessConfig 创建数据访问配置
func NewDataAccessConfig(mode Mode) *DataAccessConfig {
	if mode != ModeFallback {
		mode = ModeLive
	}
	return &DataAccessConfig{Mode: mode, nextID: 1}
}

// UsingFallbackCatalog 是否处于演示目录模式
func (c *DataAccessConfig) UsingFallbackCatalog() bool {
	return c.Mode == ModeFallback
}

// switchToFallback 切换到演示目录模式，返回是否发生了切换
func (c *DataAccessConfig) switchToFallback() bool {
	if c.Mode == ModeFallback {
		return false
	}
	c.Mode = ModeFallback
	return true
}

// observe 保证计数器大于所有已存在的 ID
func (c *DataAccessConfig) observe(products []models.Product) {
	for _, p := range products {
		if p.ID >= c.nextID {
			c.nextID = p.ID + 1
		}
	}
}

// allocateID 分配新的演示目录 ID，单调递增，删除后也不会复用
func (c *DataAccessConfig) allocateID() int64 {
	if c.nextID < 1 {
		c.nextID = 1
	}
	id := c.nextID
	c.nextID++
	return id
}
