// Package web provides the rolepanel HTTP server: routing, sessions,
// templates and background jobs.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mhsanaei/rolepanel/config"
	"github.com/mhsanaei/rolepanel/logger"
	"github.com/mhsanaei/rolepanel/util/random"
	"github.com/mhsanaei/rolepanel/web/cache"
	"github.com/mhsanaei/rolepanel/web/controller"
	"github.com/mhsanaei/rolepanel/web/job"
	"github.com/mhsanaei/rolepanel/web/middleware"
	"github.com/mhsanaei/rolepanel/web/service"
	"github.com/mhsanaei/rolepanel/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

//go:embed html/*
var htmlFS embed.FS

const shutdownTimeout = 10 * time.Second

// Server owns everything a request needs: configuration, the database handle
// and the services built on it.
type Server struct {
	cfg *config.Config
	db  *gorm.DB

	httpServer *http.Server
	listener   net.Listener
	engine     *gin.Engine
	store      sessions.Store

	userService *service.UserService

	cron *cron.Cron
}

// NewServer wires a server around store. The store is owned by the caller so
// that sessions outlive a restart of the server.
func NewServer(cfg *config.Config, db *gorm.DB, store sessions.Store) *Server {
	return &Server{
		cfg:         cfg,
		db:          db,
		store:       store,
		userService: service.NewUserService(db),
	}
}

// NewSessionStore builds the session store described by cfg with the cookie
// options applied. The returned close func is never nil.
func NewSessionStore(cfg *config.Config) (sessions.Store, func() error, error) {
	store, closeStore, err := cache.NewSessionStore(cfg.Redis, sessionSecret(cfg))
	if err != nil {
		return nil, nil, err
	}
	store.Options(session.DefaultOptions(cfg.SessionMaxAge * 60))
	return store, closeStore, nil
}

func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.New("").ParseFS(htmlFS, "html/*.html")
}

func sessionSecret(cfg *config.Config) []byte {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret)
	}
	logger.Warning("ROLEPANEL_SESSION_SECRET is empty, using a random secret; sessions will not survive a restart")
	return []byte(random.Seq(32))
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	if s.cfg.WebDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(s.cfg.WebDomain))
	}
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.Use(sessions.Sessions(session.CookieName, s.store))

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group("/")
	controller.NewIndexController(g, s.userService, s.cfg.SessionMaxAge)
	controller.NewPanelController(g, s.userService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Engine returns the configured handler, building it on first use.
func (s *Server) Engine() (http.Handler, error) {
	if s.engine == nil {
		engine, err := s.initRouter()
		if err != nil {
			return nil, err
		}
		s.engine = engine
	}
	return s.engine, nil
}

func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@hourly", job.NewCheckpointJob(s.db)); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	handler, err := s.Engine()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(s.cfg.Listen, strconv.Itoa(s.cfg.Port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop stops the jobs and drains in-flight requests. The session store is
// left open.
func (s *Server) Stop() error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Addr returns the address the server listens on, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) GetCron() *cron.Cron { return s.cron }
