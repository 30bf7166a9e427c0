package public

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/catalog"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/notify"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type cartPayload struct {
	Items []struct {
		ProductID int64        `json:"product_id"`
		Quantity  int          `json:"quantity"`
		Subtotal  models.Money `json:"subtotal"`
	} `json:"items"`
	ItemCount int          `json:"item_count"`
	Total     models.Money `json:"total"`
}

type productListPayload struct {
	Items []struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		DisplayImage string `json:"display_image"`
	} `json:"items"`
	Fallback bool `json:"fallback"`
}

func newTestEngine(t *testing.T) (*gin.Engine, *notify.MemoryInbox) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Notify.InboxCapacity = 50
	inbox := notify.NewMemoryInbox(cfg.Notify.InboxCapacity)
	store := catalog.NewStore(nil, inbox)
	cartRepo := repository.NewMemoryCartRepository(time.Hour)
	h := New(&provider.Container{
		Config:         cfg,
		Inbox:          inbox,
		Notifier:       inbox,
		Store:          store,
		CartRepo:       cartRepo,
		ProductService: service.NewProductService(store),
		CartService:    service.NewCartService(cartRepo, store, inbox),
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader(constants.CartSessionHeader); id != "" {
			c.Set(constants.CartSessionContextKey, id)
			c.Request = c.Request.WithContext(notify.WithSession(c.Request.Context(), id))
		}
		c.Next()
	})
	r.GET("/products", h.ListProducts)
	r.GET("/products/latest", h.LatestProducts)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products", h.CreateProduct)
	r.PATCH("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)
	r.GET("/catalog/status", h.CatalogStatus)
	r.GET("/notifications", h.ListNotifications)
	r.GET("/cart", h.GetCart)
	r.DELETE("/cart", h.ClearCart)
	r.POST("/cart/items", h.AddCartItem)
	r.PATCH("/cart/items/:product_id", h.UpdateCartItem)
	r.DELETE("/cart/items/:product_id", h.DeleteCartItem)
	r.POST("/cart/checkout", h.Checkout)
	return r, inbox
}

func doJSON(t *testing.T, r *gin.Engine, method, path, session string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(constants.CartSessionHeader, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s unmarshal failed: %v body=%s", method, path, err, w.Body.String())
	}
	return resp
}

func decodeData(t *testing.T, resp envelope, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, target); err != nil {
		t.Fatalf("decode data failed: %v data=%s", err, string(resp.Data))
	}
}

func TestCartFlow(t *testing.T) {
	r, _ := newTestEngine(t)
	session := uuid.NewString()

	resp := doJSON(t, r, http.MethodPost, "/cart/items", session, gin.H{"product_id": 1, "quantity": 2})
	if resp.StatusCode != 0 {
		t.Fatalf("add item failed: %+v", resp)
	}
	doJSON(t, r, http.MethodPost, "/cart/items", session, gin.H{"product_id": 3})

	var view cartPayload
	decodeData(t, doJSON(t, r, http.MethodGet, "/cart", session, nil), &view)
	if view.ItemCount != 3 || len(view.Items) != 2 {
		t.Fatalf("unexpected cart: %+v", view)
	}
	if view.Total.String() != "139.48" {
		t.Fatalf("total want 139.48 got %s", view.Total.String())
	}
	if view.Items[0].ProductID != 1 || view.Items[0].Subtotal.String() != "99.98" {
		t.Fatalf("first line should keep insertion order: %+v", view.Items[0])
	}

	decodeData(t, doJSON(t, r, http.MethodPatch, "/cart/items/1", session, gin.H{"quantity": 5}), &view)
	if view.ItemCount != 6 {
		t.Fatalf("item count after update want 6 got %d", view.ItemCount)
	}

	decodeData(t, doJSON(t, r, http.MethodPatch, "/cart/items/3", session, gin.H{"quantity": 0}), &view)
	if len(view.Items) != 1 || view.ItemCount != 5 {
		t.Fatalf("quantity 0 should remove the line: %+v", view)
	}

	resp = doJSON(t, r, http.MethodPost, "/cart/checkout", session, nil)
	if resp.StatusCode != 0 || resp.Msg != "Order placed successfully!" {
		t.Fatalf("checkout failed: %+v", resp)
	}
	var result struct {
		ItemCount int          `json:"item_count"`
		Total     models.Money `json:"total"`
	}
	decodeData(t, resp, &result)
	if result.ItemCount != 5 || result.Total.String() != "249.95" {
		t.Fatalf("unexpected checkout result: %+v", result)
	}

	decodeData(t, doJSON(t, r, http.MethodGet, "/cart", session, nil), &view)
	if len(view.Items) != 0 || view.ItemCount != 0 {
		t.Fatalf("cart should be empty after checkout: %+v", view)
	}

	var notes struct {
		Items []notify.Notification `json:"items"`
	}
	decodeData(t, doJSON(t, r, http.MethodGet, "/notifications", session, nil), &notes)
	if len(notes.Items) == 0 || notes.Items[0].Message != "Order placed successfully!" || notes.Items[0].Kind != notify.KindSuccess {
		t.Fatalf("checkout notification missing: %+v", notes.Items)
	}
}

func TestNotificationsAreScopedToSession(t *testing.T) {
	r, _ := newTestEngine(t)
	buyer, browser := uuid.NewString(), uuid.NewString()

	doJSON(t, r, http.MethodPost, "/cart/items", buyer, gin.H{"product_id": 1})
	if resp := doJSON(t, r, http.MethodPost, "/cart/checkout", buyer, nil); resp.StatusCode != 0 {
		t.Fatalf("checkout failed: %+v", resp)
	}
	doJSON(t, r, http.MethodPost, "/products", browser, gin.H{"name": "Desk Lamp", "price": 20, "description": "Warm light for late nights."})

	var notes struct {
		Items []notify.Notification `json:"items"`
	}
	decodeData(t, doJSON(t, r, http.MethodGet, "/notifications", browser, nil), &notes)
	if len(notes.Items) != 1 || notes.Items[0].Message != "Product added successfully!" {
		t.Fatalf("browser should only see its own product notification: %+v", notes.Items)
	}
	decodeData(t, doJSON(t, r, http.MethodGet, "/notifications", buyer, nil), &notes)
	if len(notes.Items) != 1 || notes.Items[0].Message != "Order placed successfully!" {
		t.Fatalf("buyer should only see its own order notification: %+v", notes.Items)
	}

	if resp := doJSON(t, r, http.MethodGet, "/notifications", "", nil); resp.StatusCode != 400 {
		t.Fatalf("notifications without a session want 400 got %d", resp.StatusCode)
	}
}

func TestCartSessionsAreIsolated(t *testing.T) {
	r, _ := newTestEngine(t)
	first, second := uuid.NewString(), uuid.NewString()

	doJSON(t, r, http.MethodPost, "/cart/items", first, gin.H{"product_id": 2})

	var view cartPayload
	decodeData(t, doJSON(t, r, http.MethodGet, "/cart", second, nil), &view)
	if len(view.Items) != 0 {
		t.Fatalf("second session should see an empty cart: %+v", view)
	}
	decodeData(t, doJSON(t, r, http.MethodDelete, "/cart/items/2", first, nil), &view)
	if len(view.Items) != 0 {
		t.Fatalf("line should be removed: %+v", view)
	}
}

func TestCartErrors(t *testing.T) {
	r, _ := newTestEngine(t)
	session := uuid.NewString()

	cases := []struct {
		name    string
		method  string
		path    string
		session string
		body    interface{}
		code    int
		msg     string
	}{
		{name: "missing session", method: http.MethodGet, path: "/cart", code: 400, msg: "Invalid cart session"},
		{name: "forged session", method: http.MethodGet, path: "/cart", session: "forged", code: 400, msg: "Invalid cart session"},
		{name: "unknown product", method: http.MethodPost, path: "/cart/items", session: session, body: gin.H{"product_id": 999}, code: 404, msg: "Product not found"},
		{name: "missing product id", method: http.MethodPost, path: "/cart/items", session: session, body: gin.H{"quantity": 1}, code: 400, msg: "Invalid request"},
		{name: "bad product id", method: http.MethodPatch, path: "/cart/items/abc", session: session, body: gin.H{"quantity": 1}, code: 400, msg: "Invalid product id"},
		{name: "missing quantity", method: http.MethodPatch, path: "/cart/items/1", session: session, body: gin.H{}, code: 400, msg: "Invalid request"},
		{name: "over max quantity", method: http.MethodPost, path: "/cart/items", session: session, body: gin.H{"product_id": 1, "quantity": service.MaxLineQuantity + 1}, code: 400, msg: "Invalid quantity"},
		{name: "empty checkout", method: http.MethodPost, path: "/cart/checkout", session: session, code: 400, msg: "Your cart is empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, r, tc.method, tc.path, tc.session, tc.body)
			if resp.StatusCode != tc.code || resp.Msg != tc.msg {
				t.Fatalf("want %d %q got %d %q", tc.code, tc.msg, resp.StatusCode, resp.Msg)
			}
		})
	}
}

func TestProductEndpoints(t *testing.T) {
	r, inbox := newTestEngine(t)

	var list productListPayload
	decodeData(t, doJSON(t, r, http.MethodGet, "/products", "", nil), &list)
	if len(list.Items) != len(catalog.DemoProducts()) || !list.Fallback {
		t.Fatalf("unexpected product list: %d fallback=%v", len(list.Items), list.Fallback)
	}

	decodeData(t, doJSON(t, r, http.MethodGet, "/products/latest?limit=3", "", nil), &list)
	if len(list.Items) != 3 || list.Items[0].ID != 10 || list.Items[2].ID != 8 {
		t.Fatalf("latest should be newest first: %+v", list.Items)
	}

	if resp := doJSON(t, r, http.MethodGet, "/products/999", "", nil); resp.StatusCode != 404 {
		t.Fatalf("missing product want 404 got %d", resp.StatusCode)
	}
	if resp := doJSON(t, r, http.MethodGet, "/products/abc", "", nil); resp.StatusCode != 400 {
		t.Fatalf("bad id want 400 got %d", resp.StatusCode)
	}

	resp := doJSON(t, r, http.MethodPost, "/products", "", gin.H{
		"name":        "Travel Mug",
		"price":       12.5,
		"description": "Keeps coffee hot on the go.",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("create failed: %+v", resp)
	}
	var created struct {
		ID           int64  `json:"id"`
		Image        string `json:"image"`
		DisplayImage string `json:"display_image"`
	}
	decodeData(t, resp, &created)
	if created.ID != 11 {
		t.Fatalf("new id want 11 got %d", created.ID)
	}
	if created.Image != models.PlaceholderImage(constants.PlaceholderImageSize) || created.DisplayImage != created.Image {
		t.Fatalf("missing image should fall back to placeholder: %+v", created)
	}
	recent, _ := inbox.Recent(t.Context(), "", 1)
	if len(recent) != 1 || recent[0].Message != "Product added successfully!" {
		t.Fatalf("create should notify: %+v", recent)
	}

	var updated struct {
		Name string `json:"name"`
	}
	decodeData(t, doJSON(t, r, http.MethodPatch, "/products/11", "", gin.H{"name": "Travel Mug XL"}), &updated)
	if updated.Name != "Travel Mug XL" {
		t.Fatalf("patch name failed: %+v", updated)
	}

	if resp := doJSON(t, r, http.MethodDelete, "/products/11", "", nil); resp.StatusCode != 0 {
		t.Fatalf("delete failed: %+v", resp)
	}
	if resp := doJSON(t, r, http.MethodGet, "/products/11", "", nil); resp.StatusCode != 404 {
		t.Fatalf("deleted product should be gone, got %d", resp.StatusCode)
	}

	var status service.CatalogStatus
	decodeData(t, doJSON(t, r, http.MethodGet, "/catalog/status", "", nil), &status)
	if !status.Fallback {
		t.Fatalf("catalog without remote should report fallback: %+v", status)
	}
}

func TestCreateProductValidationFields(t *testing.T) {
	r, _ := newTestEngine(t)

	resp := doJSON(t, r, http.MethodPost, "/products", "", gin.H{
		"name":        "ab",
		"price":       0,
		"description": "short",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("invalid product want 400 got %d", resp.StatusCode)
	}
	var data struct {
		Fields []string `json:"fields"`
	}
	decodeData(t, resp, &data)
	joined := strings.Join(data.Fields, "|")
	for _, field := range []string{"name", "price", "description"} {
		if !strings.Contains(joined, field) {
			t.Fatalf("fields should mention %s: %v", field, data.Fields)
		}
	}
}
