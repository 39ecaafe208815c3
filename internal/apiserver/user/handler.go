package user

import (
	"encoding/json"
	"net/http"

	"users-admin/internal/apiserver/apierr"
	"users-admin/internal/apiserver/validate"
	"users-admin/internal/shared/model"
)

var roles = []string{"admin", "user"}

// 每条路由的字段校验规则，违规全部收集后一次性返回
var (
	// ListRules GET /api/users
	ListRules = []validate.Rule{
		validate.QueryOptionalOneOf("role", roles, "Invalid role query"),
	}

	// CreateRules POST /api/user
	CreateRules = []validate.Rule{
		validate.Required("email", "Invalid value"),
		validate.Email("email", "a valid email is required"),
		validate.OneOf("role", roles, "A valid role is required"),
	}

	// IDRules GET/DELETE /api/user/{id}
	IDRules = []validate.Rule{
		validate.ObjectIDParam("id", "Invalid ID parameter"),
	}

	// UpdateRules PATCH /api/user/{id}
	UpdateRules = []validate.Rule{
		validate.ObjectIDParam("id", "Invalid ID parameter"),
		validate.AllowedFields("firstName", "lastName", "role"),
		validate.OptionalOneOf("role", roles, "Invalid role"),
	}
)

// Handler 受管用户 HTTP 处理器
type Handler struct {
	svc *Service
}

// NewHandler 创建处理器
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List 用户列表，支持 ?role= 过滤
//
// 路由: GET /api/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	in := validate.FromContext(r)
	role := model.Role(in.QueryValue("role"))

	users, err := h.svc.GetAll(r.Context(), role)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetOne 按 ID 获取单个用户
//
// 路由: GET /api/user/{id}
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetOne(r.Context(), r.PathValue("id"))
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Create 创建用户
//
// 路由: POST /api/user
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in := validate.FromContext(r)
	firstName, _ := in.BodyString("firstName")
	lastName, _ := in.BodyString("lastName")
	email, _ := in.BodyString("email")
	role, _ := in.BodyString("role")

	u, err := h.svc.Create(r.Context(), CreateUserDto{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      model.Role(role),
	})
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Update 部分更新用户
//
// 路由: PATCH /api/user/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in := validate.FromContext(r)
	dto := UpdateUserDto{UserID: r.PathValue("id")}
	if v, ok := in.BodyString("firstName"); ok {
		dto.FirstName = &v
	}
	if v, ok := in.BodyString("lastName"); ok {
		dto.LastName = &v
	}
	if v, ok := in.BodyString("role"); ok {
		dto.Role = &v
	}

	u, err := h.svc.Update(r.Context(), dto)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Delete 删除用户
//
// 路由: DELETE /api/user/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, true)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
