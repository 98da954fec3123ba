package galleria

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// lookupGallery resolves the :id param. Malformed ids are reported as
// ErrNotFound without touching the database.
func (a *App) lookupGallery(c echo.Context) (Gallery, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return Gallery{}, ErrNotFound
	}
	return a.Store.GetGallery(id)
}

func (a *App) handleGallery(c echo.Context) error {
	g, err := a.lookupGallery(c)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.views()))
		}
		return err
	}
	posts, err := a.Cache.ListPosts(g.ID)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Gallery(a.shell, posts))
}

// handleGalleryPosts serves a gallery's page data as JSON.
func (a *App) handleGalleryPosts(c echo.Context) error {
	g, err := a.lookupGallery(c)
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "gallery not found")
		}
		return err
	}
	posts, err := a.Cache.ListPosts(g.ID)
	if err != nil {
		return err
	}
	c.Logger().Debugf("loaded %d posts from gallery %s", len(posts), g.ID)
	if posts == nil {
		posts = []Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

// handleRobots generates robots.txt using SITE_URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	galleries, err := a.Store.ListGalleries()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, galleries)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	if code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.views()))
		return
	}
	if code >= 500 {
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config.views()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
