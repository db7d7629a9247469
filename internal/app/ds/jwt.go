package ds

import (
	"buildcost/internal/app/role"

	"github.com/golang-jwt/jwt"
)

// JWTClaims выдаются сервисом авторизации, здесь только проверяются
type JWTClaims struct {
	jwt.StandardClaims
	TenantID uint      `json:"tenant_id"`
	UserID   uint      `json:"user_id"`
	Role     role.Role `json:"role"`
}
