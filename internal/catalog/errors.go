package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRequestFailed   = errors.New("product service request failed")
	ErrResponseInvalid = errors.New("product service response invalid")
	ErrNotFound        = errors.New("product not found")
)

// FetchError 商品服务调用失败
type FetchError struct {
	Op     string // list / get / create / patch / delete
	Status int    // HTTP 状态码，传输层失败时为 0
	Kind   error  // ErrRequestFailed / ErrResponseInvalid / ErrNotFound
	Cause  error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("catalog %s: %v", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func statusError(op string, status int) *FetchError {
	kind := ErrRequestFailed
	if status == http.StatusNotFound {
		kind = ErrNotFound
	}
	return &FetchError{Op: op, Status: status, Kind: kind}
}

// IsNotFound 判断是否为目标记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
