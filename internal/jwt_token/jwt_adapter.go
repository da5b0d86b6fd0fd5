package jwttoken

import (
	"policyhub/internal/platform/middleware"
	id "policyhub/pkg/domain"
)

// JWTServiceAdapter bridges JWTService to the middleware's validator
// interface, converting string claims into typed IDs at the boundary.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	accountID, err := id.ParseAccountID(claims.AccountID)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{
		AccountID: accountID,
		Login:     claims.Login,
	}, nil
}
