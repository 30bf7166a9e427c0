package catalog

import "github.com/dujiao-next/storefront/internal/models"

// DemoProducts 演示目录，商品服务不可用时使用；每次调用返回新的切片
func DemoProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Wireless Earbuds", Price: models.MustMoney("49.99"), Description: "Bluetooth 5.3 earbuds with charging case and 24h battery life.", Image: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df", CreatedAt: "2024-01-05T09:00:00Z"},
		{ID: 2, Name: "Smart Watch", Price: models.MustMoney("129.00"), Description: "Fitness tracking, heart-rate monitor and notifications on your wrist.", Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30", CreatedAt: "2024-01-12T10:30:00Z"},
		{ID: 3, Name: "Laptop Backpack", Price: models.MustMoney("39.50"), Description: "Water resistant backpack with a padded 15.6 inch laptop sleeve.", Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62", CreatedAt: "2024-01-20T14:15:00Z"},
		{ID: 4, Name: "Mechanical Keyboard", Price: models.MustMoney("89.90"), Description: "Hot-swappable switches, RGB backlight and aluminium frame.", Image: "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae", CreatedAt: "2024-02-02T08:45:00Z"},
		{ID: 5, Name: "Portable Speaker", Price: models.MustMoney("59.00"), Description: "Compact waterproof speaker with deep bass and 12h playtime.", Image: "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1", CreatedAt: "2024-02-14T16:20:00Z"},
		{ID: 6, Name: "Desk Lamp", Price: models.MustMoney("24.99"), Description: "LED desk lamp with adjustable brightness and colour temperature.", Image: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c", CreatedAt: "2024-02-28T11:00:00Z"},
		{ID: 7, Name: "Running Shoes", Price: models.MustMoney("74.95"), Description: "Lightweight breathable running shoes with cushioned sole.", Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff", CreatedAt: "2024-03-08T07:30:00Z"},
		{ID: 8, Name: "Coffee Maker", Price: models.MustMoney("99.00"), Description: "Programmable drip coffee maker with a 12-cup glass carafe.", Image: "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085", CreatedAt: "2024-03-19T13:10:00Z"},
		{ID: 9, Name: "Sunglasses", Price: models.MustMoney("19.99"), Description: "Polarized UV400 sunglasses with a lightweight frame.", Image: "https://images.unsplash.com/photo-1511499767150-a48a237f0083", CreatedAt: "2024-04-01T15:40:00Z"},
		{ID: 10, Name: "Water Bottle", Price: models.MustMoney("15.00"), Description: "Insulated stainless steel bottle, keeps drinks cold for 24h.", Image: "https://images.unsplash.com/photo-1602143407151-7111542de6e8", CreatedAt: "2024-04-10T12:00:00Z"},
	}
}
