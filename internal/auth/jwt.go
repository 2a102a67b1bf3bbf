package auth

import (
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenLifetime matches the shop's old install: a week between logins.
const tokenLifetime = 7 * 24 * time.Hour

var (
	jwtKeyOnce sync.Once
	jwtKey     []byte
)

// key is resolved lazily so the .env file is already loaded by the time the
// first token is signed.
func key() []byte {
	jwtKeyOnce.Do(func() {
		if secret := os.Getenv("JWT_SECRET"); secret != "" {
			jwtKey = []byte(secret)
			return
		}
		// Dev fallback only; the .env shipped with the installer sets JWT_SECRET.
		log.Println("⚠️  JWT_SECRET not set, using insecure development key")
		jwtKey = []byte("dev_secret_change_me")
	})
	return jwtKey
}

// Claims is what goes inside the token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a user.
func GenerateToken(userID uint, username, role string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key())
}

// ValidateToken rejects forged or expired tokens and returns the claims.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return key(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
