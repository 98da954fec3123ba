package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/eringen/galleria"
	"github.com/eringen/galleria/views"
)

// runRender reads page data from path (or stdin for "-") and writes the
// mounted gallery page to out.
func runRender(path string, stdin io.Reader, out io.Writer) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read page data: %w", err)
	}
	posts, err := views.ParsePageData(data)
	if err != nil {
		return fmt.Errorf("decode page data: %w", err)
	}
	return views.Page(galleria.PageShell(), posts).Render(context.Background(), out)
}
