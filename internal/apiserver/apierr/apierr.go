// Package apierr 错误归一化
//
// 服务层以带类型的错误值（而不是 panic）向 controller 传递业务失败，
// Write 在传输边界把它们确定性地映射为 HTTP 状态码和统一的响应体：
//
//	{"errors": [{"message": "..."}, ...]}
//
// 非 *Error 的错误一律渲染为 500 "Something went wrong"，
// 内部细节只进日志，绝不出现在响应体里。
package apierr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"users-admin/internal/apiserver/validate"
)

// Item 响应体中的单条错误
type Item struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error 带 HTTP 状态码的业务错误
type Error struct {
	Status int
	Items  []Item
}

func (e *Error) Error() string {
	if len(e.Items) == 0 {
		return http.StatusText(e.Status)
	}
	return e.Items[0].Message
}

// New 创建单条消息的错误
func New(status int, message string) *Error {
	return &Error{Status: status, Items: []Item{{Message: message}}}
}

// NotFound 实体或路由不存在
func NotFound() *Error {
	return New(http.StatusNotFound, "Not Found")
}

// BadRequest 业务规则违规（重复 email、空更新等）
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotAuthorized 受保护路由上缺少有效身份
func NotAuthorized() *Error {
	return New(http.StatusUnauthorized, "Not authorized")
}

// FromValidation 将收集到的字段校验错误打包为一个 400
func FromValidation(errs []validate.Error) *Error {
	items := make([]Item, 0, len(errs))
	for _, e := range errs {
		items = append(items, Item{Message: e.Message, Field: e.Field})
	}
	return &Error{Status: http.StatusBadRequest, Items: items}
}

type responseBody struct {
	Errors []Item `json:"errors"`
}

// Write 将错误写入响应
func Write(w http.ResponseWriter, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		slog.Error("internal error", "error", err)
		apiErr = New(http.StatusInternalServerError, "Something went wrong")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(responseBody{Errors: apiErr.Items})
}
