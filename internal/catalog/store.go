package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/notify"

	"go.uber.org/zap"
)

// DefaultLatestCount 首页展示的最新商品数量
const DefaultLatestCount = 6

const (
	msgLoadProductsFailed = "Failed to load products"
	msgLoadProductFailed  = "Failed to load product details"
	msgProductAdded       = "Product added successfully!"
	msgProductAddedDemo   = "Product service unavailable, product saved to the demo catalog"
	msgAddProductFailed   = "Failed to add product"
	msgProductUpdated     = "Product updated successfully!"
	msgUpdateFailed       = "Failed to update product"
	msgProductDeleted     = "Product deleted successfully!"
	msgDeleteFailed       = "Failed to delete product"
)

// Store 带演示目录兜底的商品数据访问层
// 所有操作都返回尽力而为的结果，失败通过 Notifier 旁路通知，不向调用方返回错误。
type Store struct {
	mu       sync.RWMutex
	remote   Remote
	cfg      *DataAccessConfig
	fallback []models.Product
	notifier notify.Notifier
	log      *zap.SugaredLogger
}

// Option Store 选项
type Option func(*Store)

// WithFallbackCatalog 指定演示目录（会被复制）
func WithFallbackCatalog(products []models.Product) Option {
	return func(s *Store) {
		s.fallback = append([]models.Product(nil), products...)
	}
}

// WithConfig 指定数据访问配置
func WithConfig(cfg *DataAccessConfig) Option {
	return func(s *Store) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// NewStore 创建数据访问层；remote 为 nil 时直接进入演示目录模式
func NewStore(remote Remote, notifier notify.Notifier, opts ...Option) *Store {
	if notifier == nil {
		notifier = notify.Nop
	}
	s := &Store{
		remote:   remote,
		cfg:      NewDataAccessConfig(ModeLive),
		fallback: DemoProducts(),
		notifier: notifier,
		log:      logger.Named("catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.remote == nil {
		s.cfg.switchToFallback()
	}
	s.cfg.observe(s.fallback)
	return s
}

// Mode 当前数据访问模式
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Mode
}

// UsingFallbackCatalog 是否处于演示目录模式
func (s *Store) UsingFallbackCatalog() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.UsingFallbackCatalog()
}

// ListAll 获取全部商品，失败时切换到演示目录并返回其副本
func (s *Store) ListAll(ctx context.Context) []models.Product {
	if s.UsingFallbackCatalog() {
		return s.fallbackSnapshot()
	}
	products, err := s.remote.List(ctx)
	if err != nil {
		s.fail(ctx, "list", err, msgLoadProductsFailed)
		return s.fallbackSnapshot()
	}
	return products
}

// ListLatest 按 createdAt 倒序返回前 n 个商品（稳定排序）
func (s *Store) ListLatest(ctx context.Context, n int) []models.Product {
	if n <= 0 {
		n = DefaultLatestCount
	}
	products := SortByRecency(s.ListAll(ctx))
	if len(products) > n {
		products = products[:n]
	}
	return products
}

// GetByID 获取单个商品，不存在或失败时返回 false
func (s *Store) GetByID(ctx context.Context, id int64) (models.Product, bool) {
	if s.UsingFallbackCatalog() {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if idx := s.indexOf(id); idx >= 0 {
			return s.fallback[idx], true
		}
		return models.Product{}, false
	}
	product, err := s.remote.Get(ctx, id)
	if err != nil {
		if !IsNotFound(err) {
			s.fail(ctx, "get", err, msgLoadProductFailed)
		} else {
			s.log.Debugw("catalog_product_not_found", "product_id", id)
		}
		return models.Product{}, false
	}
	return *product, true
}

// Create 创建商品；商品服务失败时切换到演示目录并在内存中保存，避免丢失用户输入
func (s *Store) Create(ctx context.Context, input models.ProductInput) (models.Product, bool) {
	if !s.UsingFallbackCatalog() {
		created, err := s.remote.Create(ctx, input)
		if err == nil {
			notify.Success(ctx, s.notifier, msgProductAdded)
			return *created, true
		}
		if !s.shouldFallback("create", err) {
			s.log.Warnw("catalog_create_failed", "error", err)
			notify.Error(ctx, s.notifier, msgAddProductFailed)
			return models.Product{}, false
		}
		s.switchToFallback("create", err)
		product := s.appendFallback(input)
		notify.Error(ctx, s.notifier, msgProductAddedDemo)
		return product, true
	}
	product := s.appendFallback(input)
	notify.Success(ctx, s.notifier, msgProductAdded)
	return product, true
}

// Update 部分更新商品；live 模式下的失败只通知，不做兜底
func (s *Store) Update(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, bool) {
	if s.UsingFallbackCatalog() {
		s.mu.Lock()
		idx := s.indexOf(id)
		if idx < 0 {
			s.mu.Unlock()
			notify.Error(ctx, s.notifier, msgUpdateFailed)
			return models.Product{}, false
		}
		patch.ApplyTo(&s.fallback[idx])
		updated := s.fallback[idx]
		s.mu.Unlock()
		notify.Success(ctx, s.notifier, msgProductUpdated)
		return updated, true
	}
	updated, err := s.remote.Patch(ctx, id, patch)
	if err != nil {
		s.fail(ctx, "patch", err, msgUpdateFailed)
		return models.Product{}, false
	}
	notify.Success(ctx, s.notifier, msgProductUpdated)
	return *updated, true
}

// Delete 删除商品，返回是否发生了删除
func (s *Store) Delete(ctx context.Context, id int64) bool {
	if s.UsingFallbackCatalog() {
		s.mu.Lock()
		idx := s.indexOf(id)
		if idx >= 0 {
			s.fallback = append(s.fallback[:idx], s.fallback[idx+1:]...)
		}
		s.mu.Unlock()
		if idx < 0 {
			notify.Error(ctx, s.notifier, msgDeleteFailed)
			return false
		}
		notify.Success(ctx, s.notifier, msgProductDeleted)
		return true
	}
	if err := s.remote.Delete(ctx, id); err != nil {
		s.fail(ctx, "delete", err, msgDeleteFailed)
		return false
	}
	notify.Success(ctx, s.notifier, msgProductDeleted)
	return true
}

// SortByRecency 返回按 createdAt 倒序稳定排序的副本，无法解析的时间排在最后
func SortByRecency(products []models.Product) []models.Product {
	sorted := append([]models.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, okI := sorted[i].CreatedTime()
		tj, okJ := sorted[j].CreatedTime()
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return sorted
}

// fail 记录失败、按需切换模式并发送错误通知
func (s *Store) fail(ctx context.Context, op string, err error, message string) {
	if s.shouldFallback(op, err) {
		s.switchToFallback(op, err)
	} else {
		s.log.Warnw("catalog_request_failed", "op", op, "error", err)
	}
	notify.Error(ctx, s.notifier, message)
}

// shouldFallback 调用方取消不视为商品服务故障；
// 404 只有在按 id 定位的操作上才表示记录不存在，list/create 返回 404 说明服务本身不可用
func (s *Store) shouldFallback(op string, err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if IsNotFound(err) {
		return !targetsRecord(op)
	}
	return true
}

func targetsRecord(op string) bool {
	switch op {
	case "get", "patch", "delete":
		return true
	default:
		return false
	}
}

func (s *Store) switchToFallback(op string, err error) {
	s.mu.Lock()
	switched := s.cfg.switchToFallback()
	s.mu.Unlock()
	if switched {
		s.log.Warnw("catalog_fallback_enabled", "op", op, "error", err)
	}
}

func (s *Store) appendFallback(input models.ProductInput) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	product := input.WithID(s.cfg.allocateID())
	s.fallback = append(s.fallback, product)
	return product
}

func (s *Store) fallbackSnapshot() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product{}, s.fallback...)
}

// indexOf 调用方需持有锁
func (s *Store) indexOf(id int64) int {
	for i := range s.fallback {
		if s.fallback[i].ID == id {
			return i
		}
	}
	return -1
}
