package auth

import (
	"encoding/json"
	"net/http"

	"users-admin/internal/apiserver/apierr"
	"users-admin/internal/apiserver/validate"
	"users-admin/pkg/logging"
)

// CredentialRules register/login 共用的字段校验规则
// email 两条规则、password 两条规则，全部违规会一并返回
var CredentialRules = []validate.Rule{
	validate.Required("email", "Invalid value"),
	validate.Email("email", "a valid email is required"),
	validate.Required("password", "Invalid value"),
	validate.MinLength("password", 8, "a valid password is required"),
}

// Handler 认证 HTTP 处理器
type Handler struct {
	svc *Service
	log *logging.Logger
}

// NewHandler 创建认证处理器
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, log: logging.Default("auth")}
}

type successResponse struct {
	Success bool `json:"success"`
}

// Register 用户注册
//
// 路由: POST /api/auth/register
// 成功: 201 {"success":true} + 会话 cookie
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	email, password := credentialInput(r)

	token, err := h.svc.Register(r.Context(), email, password)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	h.log.Info("credential registered", "email", email)
	SetSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, successResponse{Success: true})
}

// Login 用户登录
//
// 路由: POST /api/auth/login
// 成功: 201 {"success":true} + 会话 cookie（与注册同一契约）
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email, password := credentialInput(r)

	token, err := h.svc.SignIn(r.Context(), email, password)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	h.log.Info("credential signed in", "email", email)
	SetSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, successResponse{Success: true})
}

// Logout 登出：覆写为已过期的 cookie
//
// 路由: GET /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// CurrentUser 返回当前身份；未认证时 currentUser 为 null
//
// 路由: GET /api/auth/current-user
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]*Session{
		"currentUser": SessionFrom(r.Context()),
	})
}

// credentialInput 从校验通过的输入提取 email/password
func credentialInput(r *http.Request) (string, string) {
	in := validate.FromContext(r)
	email, _ := in.BodyString("email")
	password, _ := in.BodyString("password")
	return email, password
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
