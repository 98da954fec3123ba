package views

import (
	"encoding/json"
	"math"
)

// Post is one gallery entry as handed to the templates. Empty strings and
// zero dimensions mean the field is absent.
type Post struct {
	SourceURL   string `json:"source_url,omitempty"`
	MediaURL    string `json:"media_url,omitempty"`
	MediaWidth  int    `json:"media_width,omitempty"`
	MediaHeight int    `json:"media_height,omitempty"`
}

// UnmarshalJSON decodes a post leniently. Values of the wrong type are
// treated as absent instead of failing the whole page.
func (p *Post) UnmarshalJSON(b []byte) error {
	var raw struct {
		SourceURL   any `json:"source_url"`
		MediaURL    any `json:"media_url"`
		MediaWidth  any `json:"media_width"`
		MediaHeight any `json:"media_height"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Post{
		SourceURL:   stringField(raw.SourceURL),
		MediaURL:    stringField(raw.MediaURL),
		MediaWidth:  dimensionField(raw.MediaWidth),
		MediaHeight: dimensionField(raw.MediaHeight),
	}
	return nil
}

// ParsePageData decodes a JSON array of posts. A JSON null decodes to an
// empty gallery.
func ParsePageData(b []byte) ([]Post, error) {
	var posts []Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// dimensionField keeps positive finite numbers, rounded up to whole pixels.
func dimensionField(v any) int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > math.MaxInt32 {
		return 0
	}
	return int(math.Ceil(f))
}

// SiteConfig holds the site-wide settings templates need.
type SiteConfig struct {
	Name string // SITE_NAME (default "Galleria")
	URL  string // SITE_URL  (default "http://localhost:3000")
}

// Gallery is a named collection of posts, created for one chat channel.
type Gallery struct {
	ID        string
	Name      string
	ChannelID int64
	Created   string
	PostCount int
}

// GalleryPost is a stored post with its bookkeeping columns.
type GalleryPost struct {
	ID        string
	GalleryID string
	MessageID int64
	Post      Post

	ThumbnailURL    string
	ThumbnailWidth  int
	ThumbnailHeight int

	Created string
}

// PageData strips bookkeeping from stored posts, keeping their order.
func PageData(posts []GalleryPost) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Post
	}
	return out
}
