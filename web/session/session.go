// Package session keeps the logged-in identity in the gin session.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieName is the name of the session cookie.
const CookieName = "rolepanel"

const loginUser = "LOGIN_USER"

// Identity is the snapshot of a user taken at login. It is not refreshed if
// the user or role changes afterwards.
type Identity struct {
	Id    int
	Login string
	Role  string
}

func init() {
	gob.Register(Identity{})
}

// DefaultOptions are the cookie options applied to every session.
func DefaultOptions(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func SetLoginUser(c *gin.Context, identity *Identity) error {
	s := sessions.Default(c)
	s.Set(loginUser, *identity)
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) {
	s := sessions.Default(c)
	s.Options(DefaultOptions(maxAge))
}

func GetLoginUser(c *gin.Context) *Identity {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if identity, ok := obj.(Identity); ok {
			return &identity
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// ClearSession drops the identity and deletes the session on the server.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(DefaultOptions(-1))
	return s.Save()
}
