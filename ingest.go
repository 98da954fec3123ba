package galleria

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/galleria/views"
)

// Message is a chat message delivered to the ingestion webhook.
type Message struct {
	ID          int64        `json:"id"`
	Attachments []Attachment `json:"attachments"`
	Embeds      []Embed      `json:"embeds"`
}

// Attachment is a file attached to a message.
type Attachment struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Embed is a link preview attached to a message.
type Embed struct {
	URL   string      `json:"url"`
	Image *EmbedImage `json:"image"`
}

// EmbedImage is the picture of an embed.
type EmbedImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ImagePosts turns the images of a message into posts: image attachments
// first, then embeds that carry an image.
func ImagePosts(msg Message) []Post {
	var posts []Post
	for _, a := range msg.Attachments {
		if a.URL == "" || !strings.HasPrefix(a.ContentType, "image") {
			continue
		}
		posts = append(posts, Post{
			MediaURL:    a.URL,
			MediaWidth:  a.Width,
			MediaHeight: a.Height,
		})
	}
	for _, e := range msg.Embeds {
		if e.Image == nil || e.Image.URL == "" {
			continue
		}
		posts = append(posts, Post{
			SourceURL:   e.URL,
			MediaURL:    e.Image.URL,
			MediaWidth:  e.Image.Width,
			MediaHeight: e.Image.Height,
		})
	}
	return posts
}

func (a *App) ingestAuthorized(c echo.Context) bool {
	if a.Config.IngestToken == "" {
		return false
	}
	got := c.Request().Header.Get("X-Ingest-Token")
	return subtle.ConstantTimeCompare([]byte(got), []byte(a.Config.IngestToken)) == 1
}

func (a *App) handleIngest(c echo.Context) error {
	if !a.ingestAuthorized(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid ingest token")
	}
	galleryID := c.Param("id")
	if _, err := a.Store.GetGallery(galleryID); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "gallery not found")
		}
		return err
	}

	var msg Message
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message")
	}
	posts := ImagePosts(msg)
	if len(posts) == 0 {
		c.Logger().Debugf("message %d has no image attachments or embeds", msg.ID)
		return c.NoContent(http.StatusNoContent)
	}

	stored, err := a.Store.AddPosts(galleryID, msg.ID, posts)
	if err != nil {
		return err
	}
	a.Cache.Invalidate(galleryID)
	c.Logger().Infof("created %d gallery entries for message %d", len(stored), msg.ID)
	return c.JSON(http.StatusCreated, views.PageData(stored))
}
