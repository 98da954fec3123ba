package galleria

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test_galleria.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
	// Running migrations twice must be harmless.
	if err := s.ensureSchema(); err != nil {
		t.Fatalf("ensureSchema again: %v", err)
	}
}

func TestCreateAndGetGallery(t *testing.T) {
	s := setupTestStore(t)

	g, err := s.CreateGallery("#art", 42)
	if err != nil {
		t.Fatalf("CreateGallery failed: %v", err)
	}
	if g.ID == "" || g.Created == "" {
		t.Fatalf("gallery should have id and creation time: %+v", g)
	}

	got, err := s.GetGallery(g.ID)
	if err != nil {
		t.Fatalf("GetGallery failed: %v", err)
	}
	if got.Name != "#art" || got.ChannelID != 42 || got.PostCount != 0 {
		t.Errorf("GetGallery = %+v", got)
	}

	byChannel, err := s.GetGalleryByChannel(42)
	if err != nil {
		t.Fatalf("GetGalleryByChannel failed: %v", err)
	}
	if byChannel.ID != g.ID {
		t.Errorf("GetGalleryByChannel id = %q, want %q", byChannel.ID, g.ID)
	}
}

func TestCreateGalleryDuplicateChannel(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateGallery("first", 7); err != nil {
		t.Fatalf("CreateGallery failed: %v", err)
	}
	if _, err := s.CreateGallery("second", 7); err != ErrGalleryExists {
		t.Errorf("expected ErrGalleryExists, got %v", err)
	}
}

func TestGetGalleryNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetGallery("missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetGalleryByChannel(99); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddAndListPosts(t *testing.T) {
	s := setupTestStore(t)
	g, err := s.CreateGallery("g", 1)
	if err != nil {
		t.Fatalf("CreateGallery failed: %v", err)
	}

	first := []Post{
		{MediaURL: "a.jpg", MediaWidth: 100, MediaHeight: 50, SourceURL: "https://x"},
		{},
	}
	if _, err := s.AddPosts(g.ID, 10, first); err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}
	if _, err := s.AddPosts(g.ID, 11, []Post{{MediaURL: "c.jpg"}}); err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}

	posts, err := s.ListPosts(g.ID)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len(posts) = %d, want 3", len(posts))
	}
	if posts[0].Post != first[0] {
		t.Errorf("posts[0] = %+v, want %+v", posts[0].Post, first[0])
	}
	if posts[1].Post != (Post{}) {
		t.Errorf("posts[1] should round-trip as empty, got %+v", posts[1].Post)
	}
	if posts[2].Post.MediaURL != "c.jpg" || posts[2].MessageID != 11 {
		t.Errorf("posts[2] = %+v", posts[2])
	}
	for _, p := range posts {
		if p.GalleryID != g.ID || p.ID == "" {
			t.Errorf("bookkeeping missing: %+v", p)
		}
	}

	got, err := s.GetGallery(g.ID)
	if err != nil {
		t.Fatalf("GetGallery failed: %v", err)
	}
	if got.PostCount != 3 {
		t.Errorf("PostCount = %d, want 3", got.PostCount)
	}
}

func TestAddPostsUnknownGallery(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.AddPosts("missing", 1, []Post{{MediaURL: "a.jpg"}}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListPostsIsolatesGalleries(t *testing.T) {
	s := setupTestStore(t)
	a, _ := s.CreateGallery("a", 1)
	b, _ := s.CreateGallery("b", 2)
	if _, err := s.AddPosts(a.ID, 1, []Post{{MediaURL: "a.jpg"}}); err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}

	posts, err := s.ListPosts(b.ID)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("gallery b should be empty, got %d posts", len(posts))
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)
	g, _ := s.CreateGallery("g", 1)
	stored, err := s.AddPosts(g.ID, 1, []Post{{MediaURL: "a.jpg"}, {MediaURL: "b.jpg"}})
	if err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}

	got, err := s.GetPost(stored[0].ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Post.MediaURL != "a.jpg" || got.GalleryID != g.ID {
		t.Errorf("GetPost = %+v", got)
	}

	if err := s.DeletePost(stored[0].ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if err := s.DeletePost(stored[0].ID); err != ErrNotFound {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
	posts, _ := s.ListPosts(g.ID)
	if len(posts) != 1 || posts[0].Post.MediaURL != "b.jpg" {
		t.Errorf("remaining posts = %+v", posts)
	}
}

func TestDeleteGallery(t *testing.T) {
	s := setupTestStore(t)
	g, _ := s.CreateGallery("g", 1)
	if _, err := s.AddPosts(g.ID, 1, []Post{{MediaURL: "a.jpg"}}); err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}

	if err := s.DeleteGallery(g.ID); err != nil {
		t.Fatalf("DeleteGallery failed: %v", err)
	}
	if _, err := s.GetGallery(g.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	posts, err := s.ListPosts(g.ID)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("posts should be deleted with the gallery, got %d", len(posts))
	}
	if err := s.DeleteGallery(g.ID); err != ErrNotFound {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}

	// The channel is free again.
	if _, err := s.CreateGallery("again", 1); err != nil {
		t.Errorf("CreateGallery after delete failed: %v", err)
	}
}

func TestListGalleries(t *testing.T) {
	s := setupTestStore(t)
	if galleries, err := s.ListGalleries(); err != nil || len(galleries) != 0 {
		t.Fatalf("ListGalleries on empty store = %v, %v", galleries, err)
	}
	for i, name := range []string{"one", "two", "three"} {
		if _, err := s.CreateGallery(name, int64(i)); err != nil {
			t.Fatalf("CreateGallery failed: %v", err)
		}
	}
	galleries, err := s.ListGalleries()
	if err != nil {
		t.Fatalf("ListGalleries failed: %v", err)
	}
	if len(galleries) != 3 {
		t.Fatalf("len = %d, want 3", len(galleries))
	}
	if galleries[0].Name != "three" {
		t.Errorf("newest gallery should be first, got %q", galleries[0].Name)
	}
}

func TestGetPostMatchesListPosts(t *testing.T) {
	s := setupTestStore(t)
	g, _ := s.CreateGallery("g", 1)
	stored, err := s.AddPosts(g.ID, 3, []Post{{MediaURL: "a.jpg", MediaWidth: 10}})
	if err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}
	if _, err := s.db.Exec(`UPDATE gallery_post SET thumbnail_url = ?, thumbnail_width = ?, thumbnail_height = ? WHERE pk = ?`,
		"a-thumb.jpg", 5, 6, stored[0].ID); err != nil {
		t.Fatalf("set thumbnail: %v", err)
	}

	listed, err := s.ListPosts(g.ID)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListPosts = %v, %v", listed, err)
	}
	got, err := s.GetPost(stored[0].ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got != listed[0] {
		t.Errorf("GetPost = %+v, ListPosts = %+v", got, listed[0])
	}
	if got.ThumbnailURL != "a-thumb.jpg" || got.ThumbnailWidth != 5 || got.ThumbnailHeight != 6 {
		t.Errorf("thumbnail columns not read: %+v", got)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.GetPost("missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
