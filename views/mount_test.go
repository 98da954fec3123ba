package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const testShell = `<!DOCTYPE html><html><head><title>t</title></head><body>` +
	`<header><h1>G-alpha-ria</h1></header><main id="app-container"><p>loading</p></main></body></html>`

func TestMountReplacesContainerChildren(t *testing.T) {
	var b strings.Builder
	err := Mount(context.Background(), &b, testShell, ContainerID, App([]Post{{MediaURL: "a.jpg"}, {MediaURL: "b.jpg"}}))
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	out := b.String()
	if strings.Contains(out, "loading") {
		t.Error("previous container content should be replaced")
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("doctype missing: %q", out[:20])
	}

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	container := findByID(doc, ContainerID)
	if container == nil {
		t.Fatal("container missing from output")
	}
	lists := elementChildren(container)
	if len(lists) != 1 {
		t.Fatalf("container children = %d, want 1", len(lists))
	}
	if got := len(elementChildren(lists[0])); got != 2 {
		t.Errorf("items = %d, want 2", got)
	}
	if h1 := findAll(doc, "h1"); len(h1) != 1 {
		t.Error("shell content outside the container should be kept")
	}
}

func TestMountEmptyGallery(t *testing.T) {
	var b strings.Builder
	if err := Page(testShell, nil).Render(context.Background(), &b); err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	doc, err := html.Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	container := findByID(doc, ContainerID)
	if container == nil || container.FirstChild == nil {
		t.Fatal("container should hold the notice")
	}
	if container.FirstChild.Type != html.TextNode || container.FirstChild.Data != "Looks like this gallery has no posts!" {
		t.Errorf("unexpected container content %q", container.FirstChild.Data)
	}
	if len(findAll(container, "div")) != 0 {
		t.Error("empty gallery should not render a list container")
	}
}

func TestMountMissingContainer(t *testing.T) {
	var b strings.Builder
	err := Mount(context.Background(), &b, `<html><body><main></main></body></html>`, ContainerID, App(nil))
	if !errors.Is(err, ErrContainerNotFound) {
		t.Fatalf("err = %v, want ErrContainerNotFound", err)
	}
	if b.Len() != 0 {
		t.Errorf("nothing should be written, got %q", b.String())
	}
}
