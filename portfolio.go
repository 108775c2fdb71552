// Package portfolio is a personal portfolio site built with Go, Echo, and
// templ. It serves a public profile page (about, projects, skills, contact)
// and an admin panel that edits that content.
//
// All content goes through the content repository, which keeps each section
// as one value in a key-value store (SQLite by default).
package portfolio

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/kvstore"
	"github.com/eringen/portfolio/views"
)

// App is the central portfolio application. It wires together the storage,
// repository, snapshot cache, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Repo   *content.Repository
	Cache  *SnapshotCache
	Logger *slog.Logger

	storage       kvstore.Storage
	closers       []func() error
	tokens        *TokenRegistry
	loginLimiter  *LoginLimiter
	submitLimiter *SubmitLimiter
	customRoutes  []func(*App)
	staticDir     string
	ready         bool
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		staticDir: "public",
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Echo == nil {
		a.Echo = echo.New()
	}
	if a.Logger == nil {
		a.Logger = NewLogger(cfg.LogLevel)
	}
	return a
}

// Setup opens storage and registers middleware and routes. Start calls it;
// tests call it directly and drive a.Echo with httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return err
	}

	if a.storage == nil {
		store, err := kvstore.OpenSQLite(a.Config.DatabasePath, a.Config.StorageQuotaBytes)
		if err != nil {
			return fmt.Errorf("portfolio: init storage: %w", err)
		}
		a.storage = store
		a.closers = append(a.closers, store.Close)
	}

	a.Repo = content.New(a.storage)
	a.Cache = NewSnapshotCache(a.Repo, a.Config.SnapshotTTL, a.Logger)
	a.tokens = NewTokenRegistry(a.Config.SessionTTL)

	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.closers = append(a.closers, func() error {
		a.loginLimiter.Stop()
		return nil
	})
	a.submitLimiter = NewSubmitLimiter(5, time.Hour, 3)

	a.Echo.HideBanner = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Logger.Info("listening", "addr", a.Config.Addr, "db", a.Config.DatabasePath)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/contact/", a.handleContactForm)
	e.POST("/contact/", a.handleContactSubmit)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)

	g := e.Group("/admin", a.requireAdmin)
	g.GET("/about/", a.handleAboutForm)
	g.POST("/about/", a.handleAboutSave)

	g.GET("/projects/", a.handleProjects)
	g.POST("/projects/", a.handleProjectAdd)
	g.POST("/projects/:id/", a.handleProjectUpdate)
	g.DELETE("/projects/:id/", a.handleProjectDelete)
	g.POST("/projects/:id/delete/", a.handleProjectDelete)

	g.GET("/skills/", a.handleSkills)
	g.POST("/skills/", a.handleSkillAdd)
	g.POST("/skills/move/", a.handleSkillMove)
	g.POST("/skills/delete/", a.handleSkillRemove)

	g.GET("/profile/", a.handleProfileImage)
	g.POST("/profile/", a.handleProfileImageUpload)
	g.DELETE("/profile/", a.handleProfileImageRemove)
	g.POST("/profile/delete/", a.handleProfileImageRemove)

	g.GET("/messages/", a.handleMessages)
	g.GET("/messages/:id/", a.handleMessageView)
	g.DELETE("/messages/:id/", a.handleMessageDelete)
	g.POST("/messages/:id/delete/", a.handleMessageDelete)
	g.DELETE("/messages/", a.handleMessagesClear)
	g.POST("/messages/delete/", a.handleMessagesClear)
}

// Close releases storage and background workers. Call this when the app is
// shutting down.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// checkPassword compares pass with the configured bcrypt hash, or with the
// plain password when no hash is set.
func (a *App) checkPassword(pass string) bool {
	if a.Config.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.Config.AdminPasswordHash), []byte(pass)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1
}
