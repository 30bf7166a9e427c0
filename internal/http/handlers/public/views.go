package public

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/cart"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/models"
)

// ProductView 商品展示数据，DisplayImage 在图片为空时为占位图
type ProductView struct {
	models.Product
	DisplayImage string `json:"display_image"`
}

// CartItemView 购物车行
type CartItemView struct {
	ProductID int64        `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
	Subtotal  models.Money `json:"subtotal"`
	Product   ProductView  `json:"product"`
}

// CartView 购物车及派生数据
type CartView struct {
	Items     []CartItemView `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     models.Money   `json:"total"`
}

func newProductView(p models.Product) ProductView {
	image := strings.TrimSpace(p.Image)
	if image == "" {
		image = models.PlaceholderImage(constants.PlaceholderImageSize)
	}
	return ProductView{Product: p, DisplayImage: image}
}

func newProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

func newCartView(c *cart.Cart) CartView {
	view := CartView{Items: []CartItemView{}}
	if c == nil {
		return view
	}
	for _, item := range c.Items() {
		view.Items = append(view.Items, CartItemView{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			Subtotal:  models.NewMoneyFromDecimal(item.Subtotal()),
			Product:   newProductView(item.Product),
		})
	}
	view.ItemCount = c.ItemCount()
	view.Total = c.Total()
	return view
}
