package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as declarações do token de acesso às rotas administrativas
type Claims struct {
	Name       string `json:"name"`
	UserRoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}
