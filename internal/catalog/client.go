package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/models"
)

const productsPath = "/products"

// Remote 商品服务访问接口，所有失败以 error 返回，不做兜底
type Remote interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	Patch(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Client 商品服务 REST 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建客户端，timeout 为 0 时不设置超时
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP 使用自定义 http.Client 创建客户端
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// BaseURL 商品服务地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List GET /products
func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, "list", http.MethodGet, productsPath, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Get GET /products/{id}
func (c *Client) Get(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "get", http.MethodGet, productPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create POST /products
func (c *Client) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "create", http.MethodPost, productsPath, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Patch PATCH /products/{id}
func (c *Client) Patch(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "patch", http.MethodPatch, productPath(id), patch, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete DELETE /products/{id}
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, productPath(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body interface{}, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &FetchError{Op: op, Kind: ErrRequestFailed, Cause: err}
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &FetchError{Op: op, Kind: ErrRequestFailed, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Kind: ErrRequestFailed, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Kind: ErrResponseInvalid, Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp.StatusCode)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Kind: ErrResponseInvalid, Cause: err}
	}
	return nil
}

func productPath(id int64) string {
	return productsPath + "/" + strconv.FormatInt(id, 10)
}
