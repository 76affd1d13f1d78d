package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every rejected token: bad signature, malformed
// structure, or past expiry. Callers get no oracle distinguishing
// forgery from expiry.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager handles generation and validation of session tokens. The
// signing secret is constructor-supplied, never an ambient global.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

// NewJWTManager builds a manager with the given TTL. The 24h default
// lives in config; a zero or negative TTL here produces tokens that are
// already expired, which Parse rejects.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

// Claims carries the acting identity: enough to perform ownership
// checks and to snapshot name/avatar onto posts and comments.
type Claims struct {
	UserID    string `json:"uid"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
	jwt.RegisteredClaims
}

// Generate signs a token for the user with the manager's TTL.
func (m *JWTManager) Generate(userID, name, avatarURL string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &Claims{
		UserID:    userID,
		Name:      name,
		AvatarURL: avatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse verifies the signature and expiry and returns the claims.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
