package response

import "github.com/gin-gonic/gin"

// AppError 接口错误：业务码、展示文案、可选的响应数据与原始错误
type AppError struct {
	Code    int
	Message string
	Data    interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// WithData 附加随错误返回的数据（如字段校验详情）
func (e *AppError) WithData(data interface{}) *AppError {
	e.Data = data
	return e
}

// Write 按统一结构写出错误响应
func (e *AppError) Write(c *gin.Context) {
	if e.Data != nil {
		ErrorWithData(c, e.Code, e.Message, e.Data)
		return
	}
	Error(c, e.Code, e.Message)
}
