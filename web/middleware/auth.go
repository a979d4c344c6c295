// Package middleware holds the gin guards interposed before protected routes.
package middleware

import (
	"net/http"

	"github.com/mhsanaei/rolepanel/web/session"

	"github.com/gin-gonic/gin"
)

// LoginUserKey is the gin context key the guards store the identity under.
const LoginUserKey = "login_user"

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// AuthRequired redirects to the login page when the request carries no session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireIdentity(c) {
			return
		}
		c.Next()
	}
}

func requireIdentity(c *gin.Context) bool {
	if _, ok := c.Get(LoginUserKey); ok {
		return true
	}
	identity := session.GetLoginUser(c)
	if identity == nil {
		// No body, unlike c.Redirect.
		c.Header("Location", LoginPath)
		c.AbortWithStatus(http.StatusFound)
		return false
	}
	c.Set(LoginUserKey, identity)
	return true
}

// LoginUser returns the identity a guard stored on c, or nil.
func LoginUser(c *gin.Context) *session.Identity {
	v, ok := c.Get(LoginUserKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*session.Identity)
	return identity
}
