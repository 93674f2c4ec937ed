package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the session cookie holding the signed token.
const CookieName = "auth-token"

// bcryptCost is high enough to resist offline brute force on leaked hashes.
const bcryptCost = 12

// Claims is the principal encoded in a session token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Manager signs and verifies session tokens with a server-held HMAC secret.
type Manager struct {
	secret        []byte
	tokenDuration time.Duration
}

func NewManager(secret string, tokenDuration time.Duration) *Manager {
	return &Manager{secret: []byte(secret), tokenDuration: tokenDuration}
}

// TokenDuration is the validity window applied to issued tokens; the session
// cookie max-age must match it.
func (m *Manager) TokenDuration() time.Duration {
	return m.tokenDuration
}

// Sign issues an HS256 token for the principal, valid for the configured
// window.
func (m *Manager) Sign(c Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   c.UserID,
		"email": c.Email,
		"role":  c.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(m.tokenDuration).Unix(),
	})
	return token.SignedString(m.secret)
}

// Verify parses and validates a token. Any failure (malformed, expired, bad
// signature, wrong algorithm) yields an error; callers must treat every
// failure mode identically as "unauthenticated".
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	c := &Claims{}
	if v, ok := claims["sub"].(string); ok {
		c.UserID = v
	}
	if v, ok := claims["email"].(string); ok {
		c.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		c.Role = v
	}
	if c.UserID == "" {
		return nil, fmt.Errorf("token missing subject")
	}

	return c, nil
}

// HashPassword returns the bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash using
// bcrypt's constant-time compare.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
