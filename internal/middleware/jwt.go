package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// Context keys populated by the middleware chain.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
	ContextScope  = "scope"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*models.JWTClaims, error)
}

// Authenticate validates the Bearer token and stores claims on the context.
func Authenticate(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing authorization header"))
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Set(ContextScope, models.ScopeFor(claims.Role, claims.CampusID, claims.GroupID))
		c.Next()
	}
}
