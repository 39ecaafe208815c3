// Package validate 声明式请求字段校验
//
// 每条路由挂一组 Rule，针对解析后的输入执行全部规则并收集所有违规项，
// 而不是在第一条失败时短路——客户端依赖收到完整的违规列表。
package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Error 单条字段校验错误
type Error struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Input 解析后的请求输入（body JSON + query + 路径参数）
// 校验通过后经 context 传递给 controller 作为 DTO 的来源
type Input struct {
	Body map[string]any
	req  *http.Request
}

// Parse 解析请求体为通用 map；空 body 视为空对象
func Parse(r *http.Request) (*Input, error) {
	in := &Input{Body: map[string]any{}, req: r}

	if r.Body == nil {
		return in, nil
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(data, &in.Body); err != nil {
		return nil, err
	}
	return in, nil
}

// Param 返回路径参数
func (in *Input) Param(name string) string {
	return in.req.PathValue(name)
}

// QueryValue 返回 query 参数
func (in *Input) QueryValue(name string) string {
	return in.req.URL.Query().Get(name)
}

// BodyString 返回 body 字段的字符串值；第二个返回值表示字段是否出现
func (in *Input) BodyString(field string) (string, bool) {
	v, ok := in.Body[field]
	if !ok {
		return "", false
	}
	return stringValue(v), true
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// Rule 一条校验规则，返回零或多条错误
type Rule func(in *Input) []Error

// Run 执行全部规则，聚合所有错误
func Run(in *Input, rules []Rule) []Error {
	var errs []Error
	for _, rule := range rules {
		errs = append(errs, rule(in)...)
	}
	return errs
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Required body 字段必须出现且非空
func Required(field, message string) Rule {
	return func(in *Input) []Error {
		v, ok := in.BodyString(field)
		if !ok || v == "" {
			return []Error{{Message: message, Field: field}}
		}
		return nil
	}
}

// Email body 字段必须是合法邮箱（缺失同样视为违规）
func Email(field, message string) Rule {
	return func(in *Input) []Error {
		v, _ := in.BodyString(field)
		if !emailRegex.MatchString(v) {
			return []Error{{Message: message, Field: field}}
		}
		return nil
	}
}

// MinLength body 字段长度不得小于 min（缺失同样视为违规）
func MinLength(field string, min int, message string) Rule {
	return func(in *Input) []Error {
		v, _ := in.BodyString(field)
		if len(v) < min {
			return []Error{{Message: message, Field: field}}
		}
		return nil
	}
}

// OneOf body 字段必须取给定枚举值之一（缺失同样视为违规）
func OneOf(field string, allowed []string, message string) Rule {
	return func(in *Input) []Error {
		v, _ := in.BodyString(field)
		if !contains(allowed, v) {
			return []Error{{Message: message, Field: field}}
		}
		return nil
	}
}

// OptionalOneOf body 字段缺失时跳过，出现时必须取枚举值之一
func OptionalOneOf(field string, allowed []string, message string) Rule {
	return func(in *Input) []Error {
		v, ok := in.BodyString(field)
		if !ok {
			return nil
		}
		if !contains(allowed, v) {
			return []Error{{Message: message, Field: field}}
		}
		return nil
	}
}

// QueryOptionalOneOf query 参数为空时跳过，出现时必须取枚举值之一
func QueryOptionalOneOf(name string, allowed []string, message string) Rule {
	return func(in *Input) []Error {
		v := in.QueryValue(name)
		if v == "" {
			return nil
		}
		if !contains(allowed, v) {
			return []Error{{Message: message, Field: name}}
		}
		return nil
	}
}

// ObjectIDParam 路径参数必须是合法的 MongoDB ObjectID
func ObjectIDParam(name, message string) Rule {
	return func(in *Input) []Error {
		if _, err := bson.ObjectIDFromHex(in.Param(name)); err != nil {
			return []Error{{Message: message, Field: name}}
		}
		return nil
	}
}

// AllowedFields body 只允许出现给定字段，多余字段聚合为一条错误
func AllowedFields(allowed ...string) Rule {
	return func(in *Input) []Error {
		var invalid []string
		for k := range in.Body {
			if !contains(allowed, k) {
				invalid = append(invalid, k)
			}
		}
		if len(invalid) == 0 {
			return nil
		}
		sort.Strings(invalid)
		return []Error{{Message: "Invalid fields: " + strings.Join(invalid, ", ")}}
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
