package server

import (
	"net/http"
	"time"

	"users-admin/internal/apiserver/apierr"
)

// recoverMiddleware 捕获 controller 冒出的 panic，渲染为通用 500
// 内部细节只进日志，不进响应体
func (h *Handler) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.log.Error("panic recovered", "panic", rec, "path", r.URL.Path)
				apierr.Write(w, apierr.New(http.StatusInternalServerError, "Something went wrong"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware CORS 白名单
// 白名单含 "*" 时回显请求 Origin（凭证模式下不能用字面量 *）
func (h *Handler) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && h.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) originAllowed(origin string) bool {
	for _, o := range h.cfg.ClientOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// requestLogMiddleware 请求访问日志
func (h *Handler) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		h.log.HTTPRequestLog(r, wrapped.statusCode, time.Since(start))
	})
}
