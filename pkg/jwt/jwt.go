package jwtutil

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

// Claims carries the token subject (the user's email). The principal is
// resolved from the database on every request, so role changes take effect
// without reissuing tokens.
type Claims struct {
	jwt.RegisteredClaims
}

func NewClaims(email string, expiry time.Duration) *Claims {
	now := time.Now().UTC()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
}

func GenerateAccessToken(claims *Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseAccessToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
