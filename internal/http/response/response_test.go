package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return body
}

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-9")

	Error(c, CodeNotFound, "Product not found")

	if w.Code != http.StatusOK {
		t.Fatalf("envelope should use http 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["status_code"].(float64) != CodeNotFound || body["msg"] != "Product not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
	data := body["data"].(map[string]interface{})
	if data["request_id"] != "req-9" {
		t.Fatalf("request id should be attached: %+v", data)
	}
}

func TestAppErrorWriteWithData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	cause := errors.New("boom")
	appErr := WrapError(CodeBadRequest, "Product data is invalid", cause).WithData(gin.H{"fields": []string{"name is required"}})
	if !errors.Is(appErr, cause) || appErr.Error() != "Product data is invalid: boom" {
		t.Fatalf("unexpected error chain: %v", appErr)
	}
	appErr.Write(c)

	body := decode(t, w)
	data := body["data"].(map[string]interface{})
	fields := data["fields"].([]interface{})
	if body["status_code"].(float64) != CodeBadRequest || len(fields) != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if _, ok := data["request_id"]; ok {
		t.Fatalf("request id should be absent without request context")
	}
}

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithMsg(c, "Order placed successfully!", gin.H{"item_count": 2})

	body := decode(t, w)
	if body["status_code"].(float64) != CodeOK || body["msg"] != "Order placed successfully!" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
