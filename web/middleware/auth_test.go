package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhsanaei/rolepanel/database/model"
	"github.com/mhsanaei/rolepanel/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsers map[int]*model.UserWithRole

func (f fakeUsers) FindUserById(id int, includeRole bool) (*model.UserWithRole, error) {
	if id < 0 {
		return nil, errors.New("database is locked")
	}
	u, ok := f[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func newEngine(users UserFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions(session.CookieName, memstore.NewStore([]byte("secret"))))
	engine.GET("/as/:who", func(c *gin.Context) {
		identities := map[string]session.Identity{
			"user":   {Id: 1, Login: "alice", Role: model.RoleUser},
			"admin":  {Id: 2, Login: "root", Role: model.RoleAdmin},
			"ghost":  {Id: 3, Login: "ghost", Role: model.RoleAdmin},
			"broken": {Id: -1, Login: "broken", Role: model.RoleAdmin},
		}
		identity := identities[c.Param("who")]
		if err := session.SetLoginUser(c, &identity); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Status(http.StatusNoContent)
	})
	engine.GET("/profile", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "hello "+LoginUser(c).Login)
	})
	engine.GET("/admin", AuthRequired(), RoleRequired(users, model.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "admin area")
	})
	engine.GET("/staff", RoleRequired(users, model.RoleAdmin, model.RoleUser), func(c *gin.Context) {
		c.String(http.StatusOK, "staff area")
	})
	return engine
}

func get(engine *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, engine *gin.Engine, who string) []*http.Cookie {
	t.Helper()
	w := get(engine, "/as/"+who, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

var users = fakeUsers{
	1: {Id: 1, Login: "alice", RoleName: model.RoleUser},
	// root's session snapshot says admin and the store agrees.
	2: {Id: 2, Login: "root", RoleName: model.RoleAdmin},
}

func TestAuthRequiredRedirects(t *testing.T) {
	engine := newEngine(users)

	for _, path := range []string{"/profile", "/admin", "/staff"} {
		w := get(engine, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, LoginPath, w.Header().Get("Location"), path)
		assert.Empty(t, w.Body.String(), path)
	}
}

func TestAuthRequiredPasses(t *testing.T) {
	engine := newEngine(users)

	w := get(engine, "/profile", loginAs(t, engine, "user"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello alice", w.Body.String())
}

func TestRoleRequired(t *testing.T) {
	engine := newEngine(users)

	w := get(engine, "/admin", loginAs(t, engine, "user"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", w.Body.String())

	w = get(engine, "/admin", loginAs(t, engine, "admin"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(engine, "/staff", loginAs(t, engine, "user"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequiredRechecksStore(t *testing.T) {
	engine := newEngine(users)

	// The session claims admin but the user no longer exists.
	w := get(engine, "/admin", loginAs(t, engine, "ghost"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(engine, "/admin", loginAs(t, engine, "broken"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "database is locked")
}

func TestDomainValidatorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(DomainValidatorMiddleware("panel.example.com"))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "panel.example.com:3000"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "evil.example.com"
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
