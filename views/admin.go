package views

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
)

func layout(cfg SiteConfig, title string, body func(p *printer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{ctx: ctx, w: w}
		p.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="initial-scale=1">`)
		p.printf(`<title>%s | %s</title><link rel="stylesheet" href="/static/galleria.css"></head>`, esc(title), esc(cfg.Name))
		p.printf(`<body><header><h1><a href="/admin/">%s</a></h1></header><main class="admin">`, esc(cfg.Name))
		body(p)
		p.printf(`</main></body></html>`)
		return p.err
	})
}

func csrfField(p *printer, token string) {
	p.printf(`<input type="hidden" name="_csrf" value="%s">`, esc(token))
}

func flash(p *printer, msg string) {
	if msg != "" {
		p.printf(`<p class="flash" role="status">%s</p>`, esc(msg))
	}
}

// AdminLogin renders the password form.
func AdminLogin(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return layout(cfg, "Sign in", func(p *printer) {
		if showError {
			p.printf(`<p class="error" role="alert">Wrong password.</p>`)
		}
		p.printf(`<form method="post" action="/admin/login/">`)
		csrfField(p, csrfToken)
		p.printf(`<label>Password <input type="password" name="password" autofocus required></label>`)
		p.printf(`<button type="submit">Sign in</button></form>`)
	})
}

// AdminDashboard lists galleries and offers a form to create one.
func AdminDashboard(cfg SiteConfig, galleries []Gallery, msg, csrfToken string) templ.Component {
	return layout(cfg, "Galleries", func(p *printer) {
		flash(p, msg)
		p.printf(`<form method="post" action="/admin/logout/" class="logout">`)
		csrfField(p, csrfToken)
		p.printf(`<button type="submit">Sign out</button></form>`)

		p.printf(`<h2>New gallery</h2><form method="post" action="/admin/galleries/">`)
		csrfField(p, csrfToken)
		p.printf(`<label>Name <input type="text" name="name" required></label>`)
		p.printf(`<label>Channel ID <input type="number" name="channel_id" min="0" required></label>`)
		p.printf(`<button type="submit">Create</button></form>`)

		p.printf(`<h2>Galleries</h2>`)
		if len(galleries) == 0 {
			p.printf(`<p>No galleries yet.</p>`)
			return
		}
		p.printf(`<table><thead><tr><th>Name</th><th>Channel</th><th>Posts</th><th>Created</th><th></th></tr></thead><tbody>`)
		for _, g := range galleries {
			p.printf(`<tr><td><a href="/admin/gallery/%s/">%s</a></td>`, esc(url.PathEscape(g.ID)), esc(g.Name))
			p.printf(`<td>%d</td><td>%d</td><td>%s</td>`, g.ChannelID, g.PostCount, esc(g.Created))
			p.printf(`<td><a href="%s" target="_blank">View</a></td></tr>`, esc(GalleryPath(g.ID)))
		}
		p.printf(`</tbody></table>`)
	})
}

// AdminGallery shows one gallery's posts with forms to add and remove them.
func AdminGallery(cfg SiteConfig, g Gallery, posts []GalleryPost, msg, csrfToken string) templ.Component {
	return layout(cfg, g.Name, func(p *printer) {
		flash(p, msg)
		id := esc(url.PathEscape(g.ID))
		p.printf(`<h2>%s</h2><p><a href="%s" target="_blank">%s</a></p>`, esc(g.Name), esc(GalleryPath(g.ID)), esc(GalleryURL(cfg, g.ID)))

		p.printf(`<h3>Add post</h3><form method="post" action="/admin/gallery/%s/posts/" enctype="multipart/form-data">`, id)
		csrfField(p, csrfToken)
		p.printf(`<label>Source URL <input type="url" name="source_url"></label>`)
		p.printf(`<label>Media URL <input type="url" name="media_url"></label>`)
		p.printf(`<label>Width <input type="number" name="media_width" min="1"></label>`)
		p.printf(`<label>Height <input type="number" name="media_height" min="1"></label>`)
		p.printf(`<label>Or upload <input type="file" name="image" accept="image/*"></label>`)
		p.printf(`<button type="submit">Add</button></form>`)

		p.printf(`<h3>Posts</h3>`)
		if len(posts) == 0 {
			p.printf(`<p>%s</p>`, esc(emptyText))
		} else {
			p.printf(`<ul class="admin-posts">`)
			for _, gp := range posts {
				p.printf(`<li>`)
				p.render(GalleryImage(gp.Post))
				p.printf(`<span>message %s</span>`, strconv.FormatInt(gp.MessageID, 10))
				p.printf(`<form method="post" action="/admin/post/%s/">`, esc(url.PathEscape(gp.ID)))
				csrfField(p, csrfToken)
				p.printf(`<input type="hidden" name="_method" value="DELETE"><button type="submit">Delete</button></form></li>`)
			}
			p.printf(`</ul>`)
		}

		p.printf(`<form method="post" action="/admin/gallery/%s/" class="danger">`, id)
		csrfField(p, csrfToken)
		p.printf(`<input type="hidden" name="_method" value="DELETE"><button type="submit">Delete gallery</button></form>`)
	})
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return layout(cfg, "Not found", func(p *printer) {
		p.printf(`<h2>Not found</h2><p>There is no gallery here.</p>`)
	})
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return layout(cfg, "Error", func(p *printer) {
		p.printf(`<h2>Something went wrong</h2><p>Please try again later.</p>`)
	})
}
