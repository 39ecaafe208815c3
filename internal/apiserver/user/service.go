// Package user 受管用户资源的 CRUD 服务与 HTTP 处理器
package user

import (
	"context"
	"fmt"

	"users-admin/internal/apiserver/apierr"
	"users-admin/internal/shared/model"
	"users-admin/internal/shared/storage"
)

// CreateUserDto 创建受管用户的输入
type CreateUserDto struct {
	FirstName string
	LastName  string
	Email     string
	Role      model.Role
}

// UpdateUserDto 部分更新的输入；nil 表示字段未出现
type UpdateUserDto struct {
	UserID    string
	FirstName *string
	LastName  *string
	Role      *string
}

// Service 受管用户业务规则：email 唯一性、部分更新有效性
//
// 业务失败以 apierr 类型的错误值返回，由 controller 确定性地映射状态码；
// 存储层故障原样传播，在边界渲染为通用 5xx。
type Service struct {
	store storage.UserStore
}

// NewService 创建用户服务
func NewService(store storage.UserStore) *Service {
	return &Service{store: store}
}

// GetAll 返回全部用户；role 非空时按角色精确过滤
func (s *Service) GetAll(ctx context.Context, role model.Role) ([]*model.User, error) {
	users, err := s.store.ListUsers(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("user: list: %w", err)
	}
	return users, nil
}

// GetOne 按 ID 查找；ID 格式在管道上游校验，这里只区分存在与否
func (s *Service) GetOne(ctx context.Context, id string) (*model.User, error) {
	u, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user: get: %w", err)
	}
	if u == nil {
		return nil, apierr.NotFound()
	}
	return u, nil
}

// Create 创建用户；email 已被其他用户占用时返回 "Email already in use"
// firstName/lastName 缺省为空字符串
func (s *Service) Create(ctx context.Context, dto CreateUserDto) (*model.User, error) {
	existing, err := s.store.GetUserByEmail(ctx, dto.Email)
	if err != nil {
		return nil, fmt.Errorf("user: lookup email: %w", err)
	}
	if existing != nil {
		return nil, apierr.BadRequest("Email already in use")
	}

	u := &model.User{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Role:      dto.Role,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("user: create: %w", err)
	}
	return u, nil
}

// Update 部分更新：只修改出现的字段，未出现的保持原样
// 三个可变字段全部缺失或为空时拒绝
func (s *Service) Update(ctx context.Context, dto UpdateUserDto) (*model.User, error) {
	existing, err := s.store.GetUserByID(ctx, dto.UserID)
	if err != nil {
		return nil, fmt.Errorf("user: get: %w", err)
	}
	if existing == nil {
		return nil, apierr.NotFound()
	}

	if isBlank(dto.FirstName) && isBlank(dto.LastName) && isBlank(dto.Role) {
		return nil, apierr.BadRequest("You should provide at least one property")
	}

	u, err := s.store.UpdateUser(ctx, dto.UserID, storage.UserPatch{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Role:      dto.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("user: update: %w", err)
	}
	return u, nil
}

// Delete 删除并返回被删除的记录
func (s *Service) Delete(ctx context.Context, id string) (*model.User, error) {
	existing, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user: get: %w", err)
	}
	if existing == nil {
		return nil, apierr.NotFound()
	}

	u, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user: delete: %w", err)
	}
	return u, nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
