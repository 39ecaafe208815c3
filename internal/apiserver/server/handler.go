// Package server 应用外壳：路由、中间件链与错误归一化
//
// 每条路由的处理管道：字段校验 → 身份识别 → 授权 → controller。
// 校验阶段把解析后的输入塞进 context，controller 从中取 DTO；
// 校验排在授权之前，与路由注册顺序保持一致。
package server

import (
	"encoding/json"
	"net/http"

	"users-admin/internal/apiserver/apierr"
	"users-admin/internal/apiserver/auth"
	"users-admin/internal/apiserver/user"
	"users-admin/internal/apiserver/validate"
	"users-admin/internal/config"
	"users-admin/internal/shared/storage"
	"users-admin/pkg/logging"
)

// Handler API 入口，负责路由请求和持有存储层连接
type Handler struct {
	store   storage.Store
	cfg     *config.Config
	auth    *auth.Handler
	users   *user.Handler
	metrics *Metrics
	log     *logging.Logger
	docs    *docsHandler
}

// New 创建 Handler 实例
func New(store storage.Store, cfg *config.Config) *Handler {
	authCfg := auth.Config{JWTSecret: cfg.JWTKey}
	h := &Handler{
		store:   store,
		cfg:     cfg,
		auth:    auth.NewHandler(auth.NewService(store, authCfg)),
		users:   user.NewHandler(user.NewService(store)),
		metrics: NewMetrics("users_admin"),
		log:     logging.Default("api-server"),
	}

	docs, err := newDocsHandler()
	if err != nil {
		h.log.WithError(err).Warn("OpenAPI document unavailable, /api-docs disabled")
	} else {
		h.docs = docs
	}

	return h
}

// Router 组装路由和中间件链
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", h.metrics.Handler())

	if h.docs != nil {
		mux.HandleFunc("GET /api-docs", h.docs.Page)
		mux.HandleFunc("GET /api-docs/openapi.json", h.docs.Document)
	}

	// 认证
	mux.HandleFunc("POST /api/auth/register", h.validated(auth.CredentialRules, h.auth.Register))
	mux.HandleFunc("POST /api/auth/login", h.validated(auth.CredentialRules, h.auth.Login))
	mux.HandleFunc("GET /api/auth/logout", h.auth.Logout)
	mux.HandleFunc("GET /api/auth/current-user", h.auth.CurrentUser)

	// 受管用户 CRUD（校验在前，授权在后）
	mux.HandleFunc("GET /api/users", h.validated(user.ListRules, auth.RequireAuth(h.users.List)))
	mux.HandleFunc("POST /api/user", h.validated(user.CreateRules, auth.RequireAuth(h.users.Create)))
	mux.HandleFunc("GET /api/user/{id}", h.validated(user.IDRules, auth.RequireAuth(h.users.GetOne)))
	mux.HandleFunc("PATCH /api/user/{id}", h.validated(user.UpdateRules, auth.RequireAuth(h.users.Update)))
	mux.HandleFunc("DELETE /api/user/{id}", h.validated(user.IDRules, auth.RequireAuth(h.users.Delete)))

	// 未匹配路由兜底
	mux.HandleFunc("/", h.NotFound)

	authCfg := auth.Config{JWTSecret: h.cfg.JWTKey}
	var handler http.Handler = mux
	handler = auth.Identify(authCfg)(handler)
	handler = h.requestLogMiddleware(handler)
	handler = h.metrics.Middleware(handler)
	handler = h.corsMiddleware(handler)
	handler = h.recoverMiddleware(handler)
	return handler
}

// validated 字段校验阶段：解析输入、执行全部规则、聚合违规
func (h *Handler) validated(rules []validate.Rule, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := validate.Parse(r)
		if err != nil {
			apierr.Write(w, apierr.BadRequest("Invalid request body"))
			return
		}
		if errs := validate.Run(in, rules); len(errs) > 0 {
			apierr.Write(w, apierr.FromValidation(errs))
			return
		}
		next(w, r.WithContext(validate.WithInput(r.Context(), in)))
	}
}

// Index 根路径：简单 HTML 首页，链向文档
//
// 路由: GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<h1>Users Admin API</h1><a href="/api-docs">Documentation</a>`))
}

// Health 健康检查接口
//
// 路由: GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound 未匹配路由统一渲染为 404 JSON
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	apierr.Write(w, apierr.NotFound())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
