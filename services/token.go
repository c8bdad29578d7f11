package services

import (
	"fmt"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenManager signs and verifies HS256 access tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(userID uint, role int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserInfo: UserInfo{UserId: userID, Role: role},
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
			Subject:   fmt.Sprint(userID),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// GetUserIDFromToken verifies the signature and expiry and returns userID and role
func (m *TokenManager) GetUserIDFromToken(tokenString string) (uint, int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "invalid token", err)
	}
	if !token.Valid {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "invalid token", nil)
	}
	if claims.UserInfo.UserId == 0 {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "token carries no user", nil)
	}
	return claims.UserInfo.UserId, claims.UserInfo.Role, nil
}
