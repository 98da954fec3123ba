package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

const (
	errorText = "Error loading this post"
	emptyText = "Looks like this gallery has no posts!"
)

// App renders the gallery list, or a notice when there is nothing to show.
func App(posts []Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(posts) == 0 {
			_, err := io.WriteString(w, templ.EscapeString(emptyText))
			return err
		}
		if _, err := io.WriteString(w, `<div class="gallery" role="list">`); err != nil {
			return err
		}
		for _, p := range posts {
			if err := GalleryImage(p).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// GalleryImage renders a single list item for p.
func GalleryImage(p Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if p.MediaURL == "" {
			b.WriteString(`<div class="error" role="listitem">`)
			b.WriteString(templ.EscapeString(errorText))
			b.WriteString(`</div>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		img := newImageAttrs(p.MediaURL).
			withWidth(p.MediaWidth).
			withHeight(p.MediaHeight)

		b.WriteString(`<div class="gallery-item" role="listitem">`)
		if p.SourceURL != "" {
			b.WriteString(`<a href="`)
			b.WriteString(templ.EscapeString(string(templ.URL(p.SourceURL))))
			b.WriteString(`" rel="noreferrer" target="_blank">`)
			img.writeTo(&b)
			b.WriteString(`</a>`)
		} else {
			img.writeTo(&b)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// imageAttrs collects the attributes of an <img>. Optional fields are only
// set when they carry a usable value.
type imageAttrs struct {
	src    string
	width  int
	height int
}

func newImageAttrs(src string) imageAttrs {
	return imageAttrs{src: src}
}

func (a imageAttrs) withWidth(w int) imageAttrs {
	if w > 0 {
		a.width = w
	}
	return a
}

func (a imageAttrs) withHeight(h int) imageAttrs {
	if h > 0 {
		a.height = h
	}
	return a
}

func (a imageAttrs) writeTo(b *strings.Builder) {
	b.WriteString(`<img src="`)
	b.WriteString(templ.EscapeString(a.src))
	b.WriteString(`" loading="lazy" referrerpolicy="no-referrer"`)
	if a.width > 0 {
		b.WriteString(` width="`)
		b.WriteString(strconv.Itoa(a.width))
		b.WriteString(`"`)
	}
	if a.height > 0 {
		b.WriteString(` height="`)
		b.WriteString(strconv.Itoa(a.height))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
}
