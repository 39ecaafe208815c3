package validate

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// WithInput 将校验通过的输入注入 context，供 controller 提取 DTO
func WithInput(ctx context.Context, in *Input) context.Context {
	return context.WithValue(ctx, ctxKey{}, in)
}

// FromContext 从 context 获取校验通过的输入
// 未经过校验阶段的请求返回一个空 Input
func FromContext(r *http.Request) *Input {
	if in, ok := r.Context().Value(ctxKey{}).(*Input); ok {
		return in
	}
	return &Input{Body: map[string]any{}, req: r}
}
