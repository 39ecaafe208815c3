package auth

import (
	"net/http"

	"users-admin/internal/apiserver/apierr"
)

// Identify 尽力而为的身份识别中间件
//
// 尝试从会话 cookie 解析令牌；无 cookie 或令牌无效时不拦截请求，
// 仅保持未认证状态——是否强制由后续的 RequireAuth 决定。
// 这样 current-user 这类可选身份的端点可以和受保护端点共用一条链。
func Identify(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ParseToken(cfg, c.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithSession(r.Context(), &Session{
				UserID: claims.UserID,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth 受保护路由中间件：未建立身份时以 401 拒绝
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()) == nil {
			apierr.Write(w, apierr.NotAuthorized())
			return
		}
		next(w, r)
	}
}
