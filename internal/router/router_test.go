package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Cart.CookieName = constants.CartSessionCookieDefault
	cfg.Cart.SessionTTLHours = 1
	cfg.Notify.InboxCapacity = 20
	return cfg
}

// newCatalogServer 启动基于 sqlite 的演示商品服务
func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file:router_catalog?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := testConfig()
	container := provider.NewCatalogContainer(cfg, db)
	if _, err := container.ProductCatalogService.Seed(context.Background()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	srv := httptest.NewServer(SetupCatalogRouter(cfg, container))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return srv
}

func newStorefront(t *testing.T, baseURL string) (*gin.Engine, *provider.Container) {
	t.Helper()
	cfg := testConfig()
	inbox := notify.NewMemoryInbox(cfg.Notify.InboxCapacity)
	client := catalog.NewClient(baseURL, 2*time.Second)
	store := catalog.NewStore(client, inbox)
	cartRepo := repository.NewMemoryCartRepository(cfg.Cart.SessionTTL())
	c := &provider.Container{
		Config:         cfg,
		Inbox:          inbox,
		Notifier:       inbox,
		CatalogClient:  client,
		Store:          store,
		CartRepo:       cartRepo,
		ProductService: service.NewProductService(store),
		CartService:    service.NewCartService(cartRepo, store, inbox),
	}
	return SetupRouter(cfg, c), c
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s decode failed: %v body=%s", method, path, err, w.Body.String())
	}
	return w, resp
}

func TestStorefrontAgainstLiveCatalog(t *testing.T) {
	catalogSrv := newCatalogServer(t)
	r, c := newStorefront(t, catalogSrv.URL)

	_, resp := call(t, r, http.MethodGet, "/api/v1/products", nil)
	var list struct {
		Items    []models.Product `json:"items"`
		Fallback bool             `json:"fallback"`
	}
	if err := json.Unmarshal(resp.Data, &list); err != nil {
		t.Fatalf("decode list failed: %v", err)
	}
	if len(list.Items) != 10 || list.Fallback {
		t.Fatalf("live list should come from catalog: len=%d fallback=%v", len(list.Items), list.Fallback)
	}

	_, resp = call(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"name":        "Travel Mug",
		"price":       "12.50",
		"description": "Keeps coffee hot on the go.",
		"image":       "https://example.com/mug.png",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("create through catalog failed: %+v", resp)
	}
	var created models.Product
	_ = json.Unmarshal(resp.Data, &created)
	if created.ID != 11 {
		t.Fatalf("catalog should assign id 11, got %d", created.ID)
	}

	w, resp := call(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": created.ID, "quantity": 2})
	if resp.StatusCode != 0 {
		t.Fatalf("add to cart failed: %+v", resp)
	}
	var session *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.CartSessionCookieDefault {
			session = cookie
		}
	}
	if session == nil {
		t.Fatalf("cart session cookie should be issued")
	}

	_, resp = call(t, r, http.MethodPost, "/api/v1/cart/checkout", nil, session)
	if resp.StatusCode != 0 || resp.Msg != "Order placed successfully!" {
		t.Fatalf("checkout failed: %+v", resp)
	}

	// 商品服务下线后切换到演示目录
	catalogSrv.Close()
	_, resp = call(t, r, http.MethodGet, "/api/v1/products", nil, session)
	if err := json.Unmarshal(resp.Data, &list); err != nil {
		t.Fatalf("decode fallback list failed: %v", err)
	}
	if !list.Fallback || len(list.Items) != len(catalog.DemoProducts()) {
		t.Fatalf("offline catalog should switch to fallback: len=%d fallback=%v", len(list.Items), list.Fallback)
	}
	if c.Store.Mode() != catalog.ModeFallback {
		t.Fatalf("store mode want fallback got %s", c.Store.Mode())
	}
	_, resp = call(t, r, http.MethodGet, "/api/v1/notifications?limit=1", nil, session)
	var notes struct {
		Items []notify.Notification `json:"items"`
	}
	if err := json.Unmarshal(resp.Data, &notes); err != nil {
		t.Fatalf("decode notifications failed: %v", err)
	}
	if len(notes.Items) != 1 || notes.Items[0].Kind != notify.KindError || notes.Items[0].Message != "Failed to load products" {
		t.Fatalf("fallback switch should notify error: %+v", notes.Items)
	}

	// 其他会话看不到该会话的通知
	_, resp = call(t, r, http.MethodGet, "/api/v1/notifications", nil)
	if err := json.Unmarshal(resp.Data, &notes); err != nil {
		t.Fatalf("decode notifications failed: %v", err)
	}
	if len(notes.Items) != 0 {
		t.Fatalf("fresh session should have no notifications: %+v", notes.Items)
	}
}

func TestStorefrontHealthAndNoRoute(t *testing.T) {
	r, _ := newStorefront(t, "")

	w, resp := call(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || resp.StatusCode != 0 {
		t.Fatalf("health failed: %d %+v", w.Code, resp)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("request id header should be set")
	}

	_, resp = call(t, r, http.MethodGet, "/api/v1/unknown", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown route want 404 got %d", resp.StatusCode)
	}
}
