package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenClaims struct {
	Appid    string         `json:"appid"`
	AppName  string         `json:"app_name"`
	User     string         `json:"user"`
	Email    string         `json:"email"`
	Fields   map[string]any `json:"fields,omitempty"`
	ExpireAt int64          `json:"expire_at"`
	jwt.RegisteredClaims
}

func NewTokenClaims(appid, appName, user, email string, expireAt int64) TokenClaims {
	return TokenClaims{
		Appid:    appid,
		AppName:  appName,
		User:     user,
		Email:    email,
		Fields:   make(map[string]any),
		ExpireAt: expireAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user,
			ExpiresAt: jwt.NewNumericDate(time.Unix(expireAt, 0)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func (c TokenClaims) GenJWT(secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

func VerifyToken(tokenValue, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Fields == nil {
		claims.Fields = make(map[string]any)
	}
	return claims, nil
}
