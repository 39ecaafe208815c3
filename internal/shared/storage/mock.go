// mock.go 提供用于测试的内存 Store 实现
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"users-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Mock 内存实现的 Store，行为与 mongostore 对齐（含唯一 email 约束）
type Mock struct {
	mu          sync.Mutex
	credentials map[string]*model.Credential // key: hex ID
	users       map[string]*model.User
}

// NewMock 创建内存存储
func NewMock() *Mock {
	return &Mock{
		credentials: make(map[string]*model.Credential),
		users:       make(map[string]*model.User),
	}
}

func (m *Mock) CreateCredential(ctx context.Context, cred *model.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.credentials {
		if c.Email == cred.Email {
			return ErrDuplicate
		}
	}
	if err := cred.HashPassword(); err != nil {
		return err
	}
	cred.ID = bson.NewObjectID()
	cp := *cred
	m.credentials[cred.ID.Hex()] = &cp
	return nil
}

func (m *Mock) GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.credentials {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Mock) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	m.users[user.ID.Hex()] = &cp
	return nil
}

func (m *Mock) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *Mock) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Mock) ListUsers(ctx context.Context, role model.Role) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*model.User{}
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		cp := *u
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *Mock) UpdateUser(ctx context.Context, id string, patch UserPatch) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Role != nil {
		u.Role = model.Role(*patch.Role)
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *Mock) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.users, id)
	return u, nil
}

func (m *Mock) Ping(ctx context.Context) error { return nil }

func (m *Mock) Close() error { return nil }

// 确保 Mock 实现了 Store 接口
var _ Store = (*Mock)(nil)
