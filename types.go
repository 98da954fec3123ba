package galleria

import (
	"database/sql"
	"errors"

	"github.com/eringen/galleria/views"
)

// Post is one gallery entry: media, optional source link and size hints.
type Post = views.Post

// Gallery is a named collection of posts tied to a chat channel.
type Gallery = views.Gallery

// GalleryPost is a Post as stored, with its ids and thumbnail columns.
type GalleryPost = views.GalleryPost

var (
	// ErrNotFound is returned when a gallery or post does not exist.
	ErrNotFound = sql.ErrNoRows

	// ErrGalleryExists is returned when a channel already has a gallery.
	ErrGalleryExists = errors.New("galleria: gallery already exists for channel")
)
