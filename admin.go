package galleria

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.Config.views(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.Config.views(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminCreateGallery(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return redirectWithMsg(c, "/admin/", "Name is required.")
	}
	channelID, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("channel_id")), 10, 64)
	if err != nil || channelID < 0 {
		return redirectWithMsg(c, "/admin/", "Channel ID must be a non-negative number.")
	}
	g, err := a.Store.CreateGallery(name, channelID)
	if err != nil {
		if err == ErrGalleryExists {
			c.Logger().Warnf("gallery for channel %d already exists", channelID)
			return redirectWithMsg(c, "/admin/", "A gallery for this channel already exists.")
		}
		return err
	}
	c.Logger().Infof("created gallery %s for channel %d", g.ID, channelID)
	return redirectWithMsg(c, adminGalleryPath(g.ID), "created")
}

func (a *App) handleAdminGallery(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	g, err := a.lookupGallery(c)
	if err != nil {
		if err == ErrNotFound {
			return echo.ErrNotFound
		}
		return err
	}
	posts, err := a.Store.ListPosts(g.ID)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminGallery(a.Config.views(), g, posts, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminDeleteGallery(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if err := a.Store.DeleteGallery(id); err != nil {
		if err == ErrNotFound {
			return echo.ErrNotFound
		}
		return err
	}
	a.Cache.Invalidate(id)
	return redirectWithMsg(c, "/admin/", "deleted")
}

// handleAdminAddPost adds one post to a gallery, either from an uploaded
// image or from the URL and size fields of the form.
func (a *App) handleAdminAddPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	g, err := a.lookupGallery(c)
	if err != nil {
		if err == ErrNotFound {
			return echo.ErrNotFound
		}
		return err
	}
	back := adminGalleryPath(g.ID)

	post := Post{
		SourceURL:   strings.TrimSpace(c.FormValue("source_url")),
		MediaURL:    strings.TrimSpace(c.FormValue("media_url")),
		MediaWidth:  formDimension(c.FormValue("media_width")),
		MediaHeight: formDimension(c.FormValue("media_height")),
	}

	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxUploadSize {
			return redirectWithMsg(c, back, "File too large (max 10MB).")
		}
		src, err := file.Open()
		if err != nil {
			return err
		}
		defer src.Close()
		up, err := processImage(src, file.Filename)
		if err != nil {
			return redirectWithMsg(c, back, "Invalid image: "+err.Error())
		}
		name, err := saveUpload(filepath.Join(a.staticDir, uploadsSubdir), up)
		if err != nil {
			return err
		}
		post.MediaURL = "/public/" + uploadsSubdir + "/" + name
		post.MediaWidth = up.Width
		post.MediaHeight = up.Height
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}

	if post.MediaURL == "" {
		return redirectWithMsg(c, back, "Add a media URL or upload an image.")
	}
	if _, err := a.Store.AddPosts(g.ID, 0, []Post{post}); err != nil {
		return err
	}
	a.Cache.Invalidate(g.ID)
	return redirectWithMsg(c, back, "saved")
}

func (a *App) handleAdminDeletePost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	gp, err := a.Store.GetPost(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return echo.ErrNotFound
		}
		return err
	}
	if err := a.Store.DeletePost(gp.ID); err != nil {
		return err
	}
	a.Cache.Invalidate(gp.GalleryID)
	return redirectWithMsg(c, adminGalleryPath(gp.GalleryID), "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	galleries, err := a.Store.ListGalleries()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(a.Config.views(), galleries, msg, CsrfToken(c)))
}

func adminGalleryPath(id string) string {
	return "/admin/gallery/" + url.PathEscape(id) + "/"
}

func redirectWithMsg(c echo.Context, to, msg string) error {
	return c.Redirect(http.StatusSeeOther, to+"?msg="+url.QueryEscape(msg))
}

// formDimension parses a size field; anything but a positive integer is
// treated as absent.
func formDimension(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
