// internal/auth/auth.go

package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rotisserie/eris"
)

const issuer = "lottery-odds"

var (
	jwtSecret []byte
	tokenTTL  = 24 * time.Hour
)

// ErrInvalidToken covers bad signatures, wrong algorithms and expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Init sets the signing key and token lifetime (set from config at startup).
func Init(secret string, ttl time.Duration) {
	jwtSecret = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

// Claims defines the JWT payload for admins allowed to run simulations.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.StandardClaims
}

// GenerateJWT creates an HS256 token valid for the configured lifetime.
func GenerateJWT(userID, username string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", eris.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseAndVerify validates the token string and returns its claims.
func ParseAndVerify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// ensure HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, eris.Wrapf(ErrInvalidToken, "unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, eris.Wrap(ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Issuer != issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
