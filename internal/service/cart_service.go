package service

import (
	"context"
	"sync"

	"github.com/dujiao-next/storefront/internal/cart"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/notify"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/google/uuid"
)

// MaxLineQuantity 单个商品允许的最大数量
const MaxLineQuantity = cart.MaxQuantity

const msgOrderPlaced = "Order placed successfully!"

// ProductLookup 按 ID 解析商品，catalog.Store 实现该接口
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (models.Product, bool)
}

// CheckoutResult 结算结果
type CheckoutResult struct {
	ItemCount int          `json:"item_count"`
	Total     models.Money `json:"total"`
}

// CartService 购物车服务，按会话加载、修改并保存购物车
type CartService struct {
	cartRepo repository.CartRepository
	products ProductLookup
	notifier notify.Notifier
	locks    *sessionLocks
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, products ProductLookup, notifier notify.Notifier) *CartService {
	if notifier == nil {
		notifier = notify.Nop
	}
	return &CartService{
		cartRepo: cartRepo,
		products: products,
		notifier: notifier,
		locks:    newSessionLocks(),
	}
}

// NewSessionID 生成新的购物车会话 ID
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID 判断会话 ID 是否合法
func ValidSessionID(sessionID string) bool {
	_, err := uuid.Parse(sessionID)
	return err == nil
}

// Get 获取会话购物车
func (s *CartService) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}
	return s.cartRepo.Load(ctx, sessionID)
}

// Add 将商品加入购物车，数量小于 1 时按 1 处理
func (s *CartService) Add(ctx context.Context, sessionID string, productID int64, quantity int) (*cart.Cart, error) {
	if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}
	if quantity > MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}
	if productID <= 0 || s.products == nil {
		return nil, ErrProductNotFound
	}
	product, ok := s.products.GetByID(ctx, productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if c.Quantity(product.ID)+normalizeQuantity(quantity) > MaxLineQuantity {
			return ErrInvalidQuantity
		}
		c.Add(product, quantity)
		return nil
	})
}

// Remove 移除商品，不存在时不做任何修改
func (s *CartService) Remove(ctx context.Context, sessionID string, productID int64) (*cart.Cart, error) {
	if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Remove(productID)
		return nil
	})
}

// UpdateQuantity 设置商品数量，小于 1 时移除
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*cart.Cart, error) {
	if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}
	if quantity > MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.UpdateQuantity(productID, quantity)
		return nil
	})
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// Checkout 结算：不涉及支付，清空购物车并发送成功通知
func (s *CartService) Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}
	var result CheckoutResult
	_, err := s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if c.Empty() {
			return ErrCartEmpty
		}
		result = CheckoutResult{ItemCount: c.ItemCount(), Total: c.Total()}
		c.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}
	notify.Success(ctx, s.notifier, msgOrderPlaced)
	return &result, nil
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn repository.CartMutation) (*cart.Cart, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()
	return s.cartRepo.Update(ctx, sessionID, fn)
}

func normalizeQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

// sessionLocks 按会话串行化修改，空闲的锁会被回收
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(key string) func() {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &sessionLock{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
