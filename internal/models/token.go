package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are embedded in the admin session token issued on verify.
type SessionClaims struct {
	AdminID string    `json:"adminId"`
	Email   string    `json:"email"`
	Role    AdminRole `json:"role"`
	jwt.RegisteredClaims
}
