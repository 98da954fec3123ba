package galleria

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding galleries and their posts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Pragmas in the DSN apply to every pooled connection, which matters for
	// foreign_keys and busy_timeout.
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	db, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS gallery (
    pk TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    discord_channel_id INTEGER NOT NULL,
    date_created TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_discord_channel_id ON gallery(discord_channel_id);
CREATE TABLE IF NOT EXISTS gallery_post (
    pk TEXT PRIMARY KEY,
    gallery TEXT NOT NULL REFERENCES gallery(pk) ON DELETE CASCADE ON UPDATE CASCADE,
    discord_message_id INTEGER NOT NULL,
    source_url TEXT,
    media_url TEXT,
    media_width INTEGER,
    media_height INTEGER,
    thumbnail_url TEXT,
    thumbnail_width INTEGER,
    thumbnail_height INTEGER,
    date_created TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_gallery_post_gallery ON gallery_post(gallery);
CREATE INDEX IF NOT EXISTS idx_gallery_post_discord_message_id ON gallery_post(discord_message_id);
`)
	return err
}

// CreateGallery inserts a new gallery for channelID. It returns
// ErrGalleryExists if the channel already has one.
func (s *Store) CreateGallery(name string, channelID int64) (Gallery, error) {
	if _, err := s.GetGalleryByChannel(channelID); err == nil {
		return Gallery{}, ErrGalleryExists
	} else if err != ErrNotFound {
		return Gallery{}, err
	}
	g := Gallery{
		ID:        uuid.NewString(),
		Name:      name,
		ChannelID: channelID,
		Created:   now(),
	}
	_, err := s.db.Exec(`INSERT INTO gallery (pk, name, discord_channel_id, date_created) VALUES (?, ?, ?, ?)`,
		g.ID, g.Name, g.ChannelID, g.Created)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Gallery{}, ErrGalleryExists
		}
		return Gallery{}, fmt.Errorf("galleria: insert gallery: %w", err)
	}
	return g, nil
}

const gallerySelect = `SELECT g.pk, g.name, g.discord_channel_id, g.date_created,
    (SELECT COUNT(*) FROM gallery_post p WHERE p.gallery = g.pk)
FROM gallery g`

func scanGallery(row interface{ Scan(...any) error }) (Gallery, error) {
	var g Gallery
	err := row.Scan(&g.ID, &g.Name, &g.ChannelID, &g.Created, &g.PostCount)
	return g, err
}

// GetGallery returns a gallery by id.
func (s *Store) GetGallery(id string) (Gallery, error) {
	return scanGallery(s.db.QueryRow(gallerySelect+` WHERE g.pk = ?`, id))
}

// GetGalleryByChannel returns the gallery created for channelID.
func (s *Store) GetGalleryByChannel(channelID int64) (Gallery, error) {
	return scanGallery(s.db.QueryRow(gallerySelect+` WHERE g.discord_channel_id = ?`, channelID))
}

// ListGalleries returns every gallery, newest first.
func (s *Store) ListGalleries() ([]Gallery, error) {
	rows, err := s.db.Query(gallerySelect + ` ORDER BY g.date_created DESC, g.rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var galleries []Gallery
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, err
		}
		galleries = append(galleries, g)
	}
	return galleries, rows.Err()
}

// DeleteGallery removes a gallery and all of its posts.
func (s *Store) DeleteGallery(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM gallery_post WHERE gallery = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM gallery WHERE pk = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// AddPosts appends posts from one message to a gallery, keeping their order.
func (s *Store) AddPosts(galleryID string, messageID int64, posts []Post) ([]GalleryPost, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT 1 FROM gallery WHERE pk = ?`, galleryID).Scan(&exists); err != nil {
		return nil, err
	}

	stmt, err := tx.Prepare(`INSERT INTO gallery_post
    (pk, gallery, discord_message_id, source_url, media_url, media_width, media_height, date_created)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	created := now()
	out := make([]GalleryPost, 0, len(posts))
	for _, p := range posts {
		gp := GalleryPost{
			ID:        uuid.NewString(),
			GalleryID: galleryID,
			MessageID: messageID,
			Post:      p,
			Created:   created,
		}
		if _, err := stmt.Exec(gp.ID, galleryID, messageID,
			nullString(p.SourceURL), nullString(p.MediaURL),
			nullDimension(p.MediaWidth), nullDimension(p.MediaHeight), created); err != nil {
			return nil, fmt.Errorf("galleria: insert post: %w", err)
		}
		out = append(out, gp)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

const postSelect = `SELECT pk, gallery, discord_message_id, source_url, media_url,
    media_width, media_height, thumbnail_url, thumbnail_width, thumbnail_height, date_created
FROM gallery_post`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPost reads one row selected with postSelect.
func scanPost(row rowScanner) (GalleryPost, error) {
	var gp GalleryPost
	var source, media, thumb sql.NullString
	var width, height, thumbW, thumbH sql.NullInt64
	if err := row.Scan(&gp.ID, &gp.GalleryID, &gp.MessageID, &source, &media,
		&width, &height, &thumb, &thumbW, &thumbH, &gp.Created); err != nil {
		return GalleryPost{}, err
	}
	gp.Post = Post{
		SourceURL:   source.String,
		MediaURL:    media.String,
		MediaWidth:  int(width.Int64),
		MediaHeight: int(height.Int64),
	}
	gp.ThumbnailURL = thumb.String
	gp.ThumbnailWidth = int(thumbW.Int64)
	gp.ThumbnailHeight = int(thumbH.Int64)
	return gp, nil
}

// ListPosts returns a gallery's posts in insertion order.
func (s *Store) ListPosts(galleryID string) ([]GalleryPost, error) {
	rows, err := s.db.Query(postSelect+` WHERE gallery = ? ORDER BY rowid`, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []GalleryPost
	for rows.Next() {
		gp, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, gp)
	}
	return posts, rows.Err()
}

// GetPost returns one stored post by id.
func (s *Store) GetPost(id string) (GalleryPost, error) {
	return scanPost(s.db.QueryRow(postSelect+` WHERE pk = ?`, id))
}

// DeletePost removes a post by id.
func (s *Store) DeletePost(id string) error {
	res, err := s.db.Exec(`DELETE FROM gallery_post WHERE pk = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDimension(n int) any {
	if n <= 0 {
		return nil
	}
	return n
}
