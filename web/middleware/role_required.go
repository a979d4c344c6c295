package middleware

import (
	"net/http"

	"github.com/mhsanaei/rolepanel/database"
	"github.com/mhsanaei/rolepanel/database/model"
	"github.com/mhsanaei/rolepanel/logger"

	"github.com/gin-gonic/gin"
)

// UserFinder loads a user joined with its role.
type UserFinder interface {
	FindUserById(id int, includeRole bool) (*model.UserWithRole, error)
}

// RoleRequired lets the request through only if the session's user still
// exists and currently holds one of roles. The role is re-read from the store
// rather than trusted from the session.
func RoleRequired(users UserFinder, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !requireIdentity(c) {
			return
		}
		identity := LoginUser(c)

		user, err := users.FindUserById(identity.Id, true)
		if database.IsNotFound(err) {
			c.String(http.StatusForbidden, "forbidden")
			c.Abort()
			return
		} else if err != nil {
			logger.Warning("role check err:", err)
			c.String(http.StatusInternalServerError, err.Error())
			c.Abort()
			return
		}
		if !allowed[user.RoleName] {
			logger.Warningf("%s denied, role %q", identity.Login, user.RoleName)
			c.String(http.StatusForbidden, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
