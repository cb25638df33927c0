package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims представляет собой данные, хранящиеся в JWT токене
type UserClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
