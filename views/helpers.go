package views

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// GalleryPath is the public page of a gallery.
func GalleryPath(id string) string {
	return "/gallery/" + url.PathEscape(id) + "/"
}

// GalleryURL is the absolute public page of a gallery.
func GalleryURL(cfg SiteConfig, id string) string {
	return buildURL(cfg.URL, "gallery", id)
}

// esc is shorthand for templ.EscapeString in hand-written components.
func esc(s string) string {
	return templ.EscapeString(s)
}

// printer writes formatted markup and remembers the first write error.
// printf does no escaping: every %s argument must already have gone
// through esc.
type printer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) render(cmp templ.Component) {
	if p.err != nil {
		return
	}
	p.err = cmp.Render(p.ctx, p.w)
}
