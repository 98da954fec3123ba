package main

import (
	"fmt"
	"os"

	"github.com/eringen/galleria"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "render":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: galleria render <page-data.json|->")
			os.Exit(1)
		}
		if err := runRender(os.Args[2], os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("galleria %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := galleria.LoadConfig()
	if err != nil {
		return err
	}
	app := galleria.New(cfg)
	defer app.Close()
	return app.Start()
}

func printUsage() {
	fmt.Println(`galleria - Image galleries built with Go, Echo, and templ

Usage:
  galleria <command> [arguments]

Commands:
  serve           Start the web server (configured from the environment)
  render <file>   Render a page from a JSON array of posts ("-" reads stdin)
  version         Print the galleria version
  help            Show this help message

Environment:
  SITE_NAME, SITE_URL, ADDR, DATABASE_PATH, ADMIN_PASSWORD,
  ADMIN_SESSION_SECRET, COOKIE_SECURE, POST_CACHE_TTL, INGEST_TOKEN`)
}
