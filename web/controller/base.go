// Package controller provides the HTTP handlers of the rolepanel web app:
// registration, login and logout, and the pages behind the guards.
package controller

import (
	"errors"
	"net/http"

	"github.com/mhsanaei/rolepanel/database"
	"github.com/mhsanaei/rolepanel/logger"
	"github.com/mhsanaei/rolepanel/web/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// BaseController provides the error mapping shared by all controllers.
type BaseController struct{}

// abortWithError writes err as plain text with the status its kind maps to.
func (a *BaseController) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var cv *database.ConstraintViolation
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		status = http.StatusBadRequest
	case errors.As(err, &cv):
		status = http.StatusBadRequest
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		status = http.StatusBadRequest
	default:
		logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.String(status, err.Error())
	c.Abort()
}
