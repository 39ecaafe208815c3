package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role 受管用户角色
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid 角色是否合法
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User 通过 CRUD API 管理的用户记录（与登录凭证无关）
//
// email 必填但存储层不保证唯一，唯一性由服务层在创建前检查。
// firstName/lastName 可选，缺省为空字符串。
type User struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	FirstName string        `bson:"firstName" json:"firstName"`
	LastName  string        `bson:"lastName" json:"lastName"`
	Email     string        `bson:"email" json:"email"`
	Role      Role          `bson:"role" json:"role"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
