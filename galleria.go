// Package galleria serves image galleries built with Go, Echo, and templ.
// Each gallery page is the embedded page shell with the gallery list mounted
// into its app container. Posts reach a gallery through the admin dashboard
// or the message ingestion webhook, and are stored in SQLite.
package galleria

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/galleria/views"
)

// ViewFuncs holds the templ components the handlers render. DefaultViews
// returns the built-in set; any field can be swapped out with WithViews.
type ViewFuncs struct {
	Gallery        func(shell string, posts []Post) templ.Component
	AdminLogin     func(cfg views.SiteConfig, showError bool, csrfToken string) templ.Component
	AdminDashboard func(cfg views.SiteConfig, galleries []Gallery, message, csrfToken string) templ.Component
	AdminGallery   func(cfg views.SiteConfig, g Gallery, posts []GalleryPost, message, csrfToken string) templ.Component
	NotFound       func(cfg views.SiteConfig) templ.Component
	ServerError    func(cfg views.SiteConfig) templ.Component
}

// DefaultViews returns the components from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Gallery:        views.Page,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		AdminGallery:   views.AdminGallery,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// WithViews replaces the components the handlers render.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// App is the central galleria application. It wires together the store,
// cache, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	shell        string
	ownsStore    bool
}

// New creates a new galleria App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		staticDir: "public",
		shell:     PageShell(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the store and registers middleware and routes. Start calls
// it; tests and embedders can call it directly and use Echo as a handler.
func (a *App) Setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("galleria: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("galleria: SessionSecret is required")
	}

	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("galleria: init store: %w", err)
		}
		a.Store = store
		a.ownsStore = true
	}

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves HTTP on Config.Addr.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("galleria listening on %s", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.StaticFS("/static", echo.MustSubFS(EmbeddedAssets, "embedded"))
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	// Public gallery routes
	e.GET("/gallery/:id/", a.handleGallery)
	e.GET("/api/v1/gallery/posts/:id", a.handleGalleryPosts)
	e.POST("/api/v1/gallery/:id/messages", a.handleIngest)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/galleries/", a.handleAdminCreateGallery)
	e.GET("/admin/gallery/:id/", a.handleAdminGallery)
	e.DELETE("/admin/gallery/:id/", a.handleAdminDeleteGallery)
	e.POST("/admin/gallery/:id/posts/", a.handleAdminAddPost)
	e.DELETE("/admin/post/:id/", a.handleAdminDeletePost)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil && a.ownsStore {
		return a.Store.Close()
	}
	return nil
}
