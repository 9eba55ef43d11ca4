package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/logger"
	"gagyebu/internal/models"
)

// Context keys set by AuthMiddleware.
const (
	EmailKey = "email"
	RoleKey  = "role"
)

// RoleLookup resolves a signed-in email to a household role.
type RoleLookup interface {
	RoleFor(email string) (models.Role, error)
}

// SessionClaims are the claims of the session token issued by the sign-in
// provider. Only the email is used.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the bearer session token and sets the caller's
// email and household role in the context. Callers outside the household
// are rejected.
func AuthMiddleware(secret []byte, roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid || claims.Email == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		role, err := roles.RoleFor(claims.Email)
		if err != nil {
			logger.Get().Warnw("rejected caller outside the household", "email", claims.Email)
			abortWithError(c, err)
			return
		}

		c.Set(EmailKey, strings.ToLower(claims.Email))
		c.Set(RoleKey, role)
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	c.Abort()
	WriteError(c, err)
}
