package controller

import (
	"net/http"

	"github.com/mhsanaei/rolepanel/logger"
	"github.com/mhsanaei/rolepanel/web/service"
	"github.com/mhsanaei/rolepanel/web/session"

	"github.com/gin-gonic/gin"
)

// CredentialsForm is the body of the login and register forms.
type CredentialsForm struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the public routes: home, register, login, logout.
type IndexController struct {
	BaseController

	userService   *service.UserService
	sessionMaxAge int
}

// NewIndexController registers the public routes on g. sessionMaxAge is in
// minutes.
func NewIndexController(g *gin.RouterGroup, users *service.UserService, sessionMaxAge int) *IndexController {
	a := &IndexController{
		userService:   users,
		sessionMaxAge: sessionMaxAge,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/register", a.showRegister)
	g.POST("/register", a.register)
	g.GET("/login", a.showLogin)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (a *IndexController) showRegister(c *gin.Context) {
	html(c, "register.html", "Register", nil)
}

func (a *IndexController) register(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form data")
		return
	}
	if form.Login == "" || form.Password == "" {
		c.String(http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := a.userService.Register(form.Login, form.Password)
	if err != nil {
		logger.Warningf("register %q failed: %v", form.Login, err)
		a.abortWithError(c, err)
		return
	}

	logger.Infof("%s registered, id %d", user.Login, user.Id)
	c.Redirect(http.StatusFound, "/login")
}

func (a *IndexController) showLogin(c *gin.Context) {
	html(c, "login.html", "Login", nil)
}

func (a *IndexController) login(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form data")
		return
	}

	user, err := a.userService.CheckUser(form.Login, form.Password)
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	if user == nil {
		logger.Warningf("wrong login or password for %q, IP: %s", form.Login, getRemoteIp(c))
		c.String(http.StatusUnauthorized, "invalid login or password")
		return
	}

	session.SetMaxAge(c, a.sessionMaxAge*60)
	err = session.SetLoginUser(c, &session.Identity{
		Id:    user.Id,
		Login: user.Login,
		Role:  user.RoleName,
	})
	if err != nil {
		logger.Warning("Unable to save session:", err)
		a.abortWithError(c, err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Login, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/profile")
}

// logout always redirects, even when the store fails to drop the session.
func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out successfully", user.Login)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to clear session:", err)
	}
	c.Redirect(http.StatusFound, "/")
}
