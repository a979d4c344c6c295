package controller

import (
	"net/http"

	"github.com/mhsanaei/rolepanel/database/model"
	"github.com/mhsanaei/rolepanel/web/middleware"
	"github.com/mhsanaei/rolepanel/web/service"

	"github.com/gin-gonic/gin"
)

// PanelController serves the pages that need a session.
type PanelController struct {
	BaseController
}

func NewPanelController(g *gin.RouterGroup, users *service.UserService) *PanelController {
	a := &PanelController{}
	a.initRouter(g, users)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup, users *service.UserService) {
	g = g.Group("/")
	g.Use(middleware.AuthRequired())

	g.GET("/profile", a.profile)
	g.GET("/admin", middleware.RoleRequired(users, model.RoleAdmin), a.admin)
}

func (a *PanelController) profile(c *gin.Context) {
	user := middleware.LoginUser(c)
	html(c, "profile.html", "Profile", gin.H{
		"login": user.Login,
		"role":  user.Role,
	})
}

func (a *PanelController) admin(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the admin page, %s", middleware.LoginUser(c).Login)
}
