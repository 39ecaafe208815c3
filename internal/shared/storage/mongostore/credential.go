package mongostore

import (
	"context"

	"users-admin/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ============================================================================
// CredentialStore
// ============================================================================

// CreateCredential 写入认证凭证
// 入库前对密码做 bcrypt 哈希，明文永不落盘
func (s *Store) CreateCredential(ctx context.Context, cred *model.Credential) error {
	if err := cred.HashPassword(); err != nil {
		return err
	}
	cred.ID = bson.NewObjectID()
	return insertOne(ctx, s.col(ColAuthUsers), cred)
}

func (s *Store) GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	return findOne[model.Credential](ctx, s.col(ColAuthUsers), bson.D{{Key: "email", Value: email}})
}
