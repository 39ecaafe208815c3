package auth

import (
	"context"
	"fmt"

	"users-admin/internal/apiserver/apierr"
	"users-admin/internal/shared/model"
	"users-admin/internal/shared/storage"
)

// Service 认证服务：注册凭证、核验登录、签发会话令牌
//
// 业务失败以带类型的错误值返回（apierr.Error），由 controller 映射状态码。
// 存储层故障原样向上传播，在边界渲染为通用 5xx。
type Service struct {
	creds storage.CredentialStore
	cfg   Config
}

// NewService 创建认证服务
func NewService(creds storage.CredentialStore, cfg Config) *Service {
	return &Service{creds: creds, cfg: cfg}
}

// Register 注册新凭证并签发会话令牌
// email 已被占用时返回 "Email already taken"
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	existing, err := s.creds.GetCredentialByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("auth: lookup credential: %w", err)
	}
	if existing != nil {
		return "", apierr.BadRequest("Email already taken")
	}

	cred := &model.Credential{Email: email, Password: password}
	if err := s.creds.CreateCredential(ctx, cred); err != nil {
		return "", fmt.Errorf("auth: create credential: %w", err)
	}

	return GenerateToken(s.cfg, cred.ID.Hex(), cred.Email)
}

// SignIn 核验凭证并签发会话令牌
// 无论 email 不存在还是密码错误，都返回同一条 "Wrong credentials"，
// 防止账号枚举
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	cred, err := s.creds.GetCredentialByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("auth: lookup credential: %w", err)
	}
	if cred == nil {
		return "", apierr.BadRequest("Wrong credentials")
	}

	if !cred.ComparePassword(password) {
		return "", apierr.BadRequest("Wrong credentials")
	}

	return GenerateToken(s.cfg, cred.ID.Hex(), cred.Email)
}
