// Package storage 提供存储层抽象
//
// 接口按资源拆分：CredentialStore 负责认证凭证，UserStore 负责受管用户。
// Store 组合两者并附带连接生命周期管理，由 mongostore 实现。
package storage

import (
	"context"
	"errors"

	"users-admin/internal/shared/model"
)

// 领域错误（由具体驱动的 wrapError 归一化）
var (
	ErrNotFound  = errors.New("storage: not found")
	ErrDuplicate = errors.New("storage: duplicate key")
)

// CredentialStore 认证凭证存储
type CredentialStore interface {
	// CreateCredential 写入凭证；入库前对 Password 做 bcrypt 哈希并分配 ID
	CreateCredential(ctx context.Context, cred *model.Credential) error
	// GetCredentialByEmail 按 email 查找，不存在时返回 (nil, nil)
	GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error)
}

// UserPatch 部分更新：nil 字段保持不变
type UserPatch struct {
	FirstName *string
	LastName  *string
	Role      *string
}

// UserStore 受管用户存储
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByID 不存在时返回 (nil, nil)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByEmail 不存在时返回 (nil, nil)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// ListUsers role 为空时返回全部，否则按角色精确过滤
	ListUsers(ctx context.Context, role model.Role) ([]*model.User, error)
	// UpdateUser 仅更新 patch 中非 nil 的字段，返回更新后的记录
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*model.User, error)
	// DeleteUser 删除并返回被删除的记录；不存在时返回 ErrNotFound
	DeleteUser(ctx context.Context, id string) (*model.User, error)
}

// Store 持久化存储
type Store interface {
	CredentialStore
	UserStore
	Ping(ctx context.Context) error
	Close() error
}
