package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = 1

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type Claims struct {
	UserName   string
	UserRoleID int
	jwt.RegisteredClaims
}
