package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/middleware"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
)

// callerScope returns the visibility scope set by the auth middleware. An
// absent scope means the route is misconfigured, so fail closed with an
// impossible filter rather than open.
func callerScope(c *gin.Context) models.AccessScope {
	value, exists := c.Get(middleware.ContextScope)
	if !exists {
		return models.AccessScope{GroupID: "00000000-0000-0000-0000-000000000000"}
	}
	scope, ok := value.(models.AccessScope)
	if !ok {
		return models.AccessScope{GroupID: "00000000-0000-0000-0000-000000000000"}
	}
	return scope
}

func callerID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func callerRole(c *gin.Context) models.UserRole {
	value, exists := c.Get(middleware.ContextRole)
	if !exists {
		return ""
	}
	role, _ := value.(models.UserRole)
	return role
}
