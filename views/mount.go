package views

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

// ContainerID is the id of the element the gallery is mounted into.
const ContainerID = "app-container"

// ErrContainerNotFound is returned by Mount when the shell has no element
// with the requested id.
var ErrContainerNotFound = errors.New("views: mount container not found")

// Page mounts App(posts) into the app container of shell.
func Page(shell string, posts []Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Mount(ctx, w, shell, ContainerID, App(posts))
	})
}

// Mount parses shell, replaces the children of the element whose id is
// containerID with the output of cmp, and writes the resulting document to w.
// Nothing is written unless the whole document renders.
func Mount(ctx context.Context, w io.Writer, shell, containerID string, cmp templ.Component) error {
	doc, err := html.Parse(strings.NewReader(shell))
	if err != nil {
		return fmt.Errorf("views: parse shell: %w", err)
	}
	container := findByID(doc, containerID)
	if container == nil {
		return fmt.Errorf("%w: #%s", ErrContainerNotFound, containerID)
	}

	var rendered bytes.Buffer
	if err := cmp.Render(ctx, &rendered); err != nil {
		return err
	}
	nodes, err := html.ParseFragment(&rendered, container)
	if err != nil {
		return fmt.Errorf("views: parse component output: %w", err)
	}

	for c := container.FirstChild; c != nil; c = container.FirstChild {
		container.RemoveChild(c)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	var out bytes.Buffer
	if err := html.Render(&out, doc); err != nil {
		return fmt.Errorf("views: render document: %w", err)
	}
	_, err = w.Write(out.Bytes())
	return err
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
