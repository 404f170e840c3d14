package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserIDKey      = "userID"
	CurrentUserKey = "currentUser"

	// SessionCookie is the cookie the browser replays on every request.
	SessionCookie = "session"

	// SessionTTL bounds how long a login survives without re-authenticating.
	SessionTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type TokenType string

const (
	SessionToken TokenType = "session"
)

type Claims struct {
	UserID int       `json:"user_id"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

// IssueSession creates the signed session token for a logged-in user.
// The token is self-contained: no server-side session table exists.
func IssueSession(userID int, secret string) (string, error) {
	return issueSession(userID, SessionTTL, secret)
}

func issueSession(userID int, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Type:   SessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSession validates and parses a session token
func ValidateSession(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != SessionToken {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetUserIDFromContext extracts userID from Gin context
func GetUserIDFromContext(c *gin.Context) (int, error) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(int)
	if !ok {
		return 0, fmt.Errorf("invalid user ID type")
	}

	return id, nil
}
