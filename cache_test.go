package galleria

import (
	"testing"
	"time"
)

func TestPostCacheServesStaleUntilInvalidated(t *testing.T) {
	s := setupTestStore(t)
	g, _ := s.CreateGallery("g", 1)
	if _, err := s.AddPosts(g.ID, 1, []Post{{MediaURL: "a.jpg"}}); err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}
	c := NewPostCache(s, time.Hour)

	posts, err := c.ListPosts(g.ID)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len = %d, want 1", len(posts))
	}

	if _, err := s.AddPosts(g.ID, 2, []Post{{MediaURL: "b.jpg"}}); err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}
	posts, _ = c.ListPosts(g.ID)
	if len(posts) != 1 {
		t.Errorf("cached read should not see the new post, got %d", len(posts))
	}

	c.Invalidate(g.ID)
	posts, _ = c.ListPosts(g.ID)
	if len(posts) != 2 || posts[1].MediaURL != "b.jpg" {
		t.Errorf("after Invalidate = %+v", posts)
	}
}

func TestPostCacheExpires(t *testing.T) {
	s := setupTestStore(t)
	g, _ := s.CreateGallery("g", 1)
	c := NewPostCache(s, 50*time.Millisecond)

	if posts, _ := c.ListPosts(g.ID); len(posts) != 0 {
		t.Fatalf("expected empty gallery")
	}
	if _, err := s.AddPosts(g.ID, 1, []Post{{MediaURL: "a.jpg"}}); err != nil {
		t.Fatalf("AddPosts failed: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	if posts, _ := c.ListPosts(g.ID); len(posts) != 1 {
		t.Errorf("expected reload after TTL, got %d posts", len(posts))
	}
}

func TestPostCacheInvalidateAll(t *testing.T) {
	s := setupTestStore(t)
	a, _ := s.CreateGallery("a", 1)
	b, _ := s.CreateGallery("b", 2)
	c := NewPostCache(s, time.Hour)
	c.ListPosts(a.ID)
	c.ListPosts(b.ID)

	s.AddPosts(a.ID, 1, []Post{{MediaURL: "a.jpg"}})
	s.AddPosts(b.ID, 1, []Post{{MediaURL: "b.jpg"}})
	c.InvalidateAll()

	for _, id := range []string{a.ID, b.ID} {
		if posts, _ := c.ListPosts(id); len(posts) != 1 {
			t.Errorf("gallery %s: expected reload, got %d posts", id, len(posts))
		}
	}
}
