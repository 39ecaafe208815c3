package model

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

// Credential 认证身份（email + 密码哈希），与受管用户资源相互独立
//
// Password 字段在入库前必须经过 HashPassword 处理，明文永不落盘。
type Credential struct {
	ID       bson.ObjectID `bson:"_id" json:"id"`
	Email    string        `bson:"email" json:"email"`
	Password string        `bson:"password" json:"-"`
}

// HashPassword 使用 bcrypt 将 Password 字段替换为哈希值
// 存储层在写入前调用，对应原 schema 的 pre-save 钩子
func (c *Credential) HashPassword() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), 12)
	if err != nil {
		return err
	}
	c.Password = string(hash)
	return nil
}

// ComparePassword 以常数时间比较明文密码与存储的哈希
func (c *Credential) ComparePassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(plain)) == nil
}
