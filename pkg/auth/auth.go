package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	"launchrate/pkg/response"
)

const viewerKey = "viewer_uuid"

type Claims struct {
	UUID  string `json:"uuid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func secret() []byte {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		s = "launchrate-dev-secret"
	}
	return []byte(s)
}

// SignToken issues an HS256 bearer token for the given user.
func SignToken(userUUID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UUID:  userUUID,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func ParseToken(tok string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (any, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// Optional attaches the viewer UUID to the gin context when a valid
// Authorization header is present. Anonymous requests pass through.
func Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			if claims, err := ParseToken(tok); err == nil {
				c.Set(viewerKey, claims.UUID)
			}
		}
		c.Next()
	}
}

// Required aborts with 401 unless Optional (registered before it) resolved
// a viewer.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Viewer(c) == "" {
			response.Fail(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Viewer returns the authenticated viewer UUID, or "" for anonymous.
func Viewer(c *gin.Context) string {
	v, ok := c.Get(viewerKey)
	if !ok {
		return ""
	}
	uuid, _ := v.(string)
	return uuid
}
