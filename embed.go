package galleria

import (
	"embed"
	"io/fs"
)

// EmbeddedAssets contains the page shell (index.html) and the stylesheet
// served under /static/.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// PageShell returns the HTML document the gallery is mounted into.
func PageShell() string {
	b, err := fs.ReadFile(EmbeddedAssets, "embedded/index.html")
	if err != nil {
		// The file is compiled in; a read failure is a build defect.
		panic(err)
	}
	return string(b)
}
