package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims App 客户端 Bearer Token 中的业务信息
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	Admin  bool   `json:"admin"`
	jwt.RegisteredClaims
}
