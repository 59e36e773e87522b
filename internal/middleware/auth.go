package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	identitydomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AccessTokenValidator is satisfied by *auth.JWTManager.
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

func AuthMiddleware(tokens AccessTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token não informado.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Formato de token inválido.")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				httperr.Unauthorized(c, "token_expired", "Token expirado.")
			} else {
				httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// Actor reads the caller set by AuthMiddleware.
func Actor(c *gin.Context) identitydomain.Actor {
	return identitydomain.Actor{
		UserID: c.MustGet(ContextUserID).(models.UserID),
		Role:   c.MustGet(ContextUserRole).(models.Role),
	}
}

// RequireAction lets through callers whose role is granted action on
// every target.
func RequireAction(action identitydomain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		r, _ := role.(models.Role)

		if !identitydomain.Allowed(r, action, "") {
			httperr.Forbidden(c, "forbidden", "Acesso não autorizado.")
			c.Abort()
			return
		}
		c.Next()
	}
}
