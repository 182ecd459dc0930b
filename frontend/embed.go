package frontend

import (
	"embed"
	"io/fs"
	"net/http"
)

// FS embeds the web UI assets
//
//go:embed all:static
var FS embed.FS

// GetHTTPFS returns the embedded web UI filesystem for HTTP serving
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		return nil, err
	}

	// The index page is the entry point for everything else, treat its
	// absence as a missing frontend
	if _, err := fs.Stat(sub, "index.html"); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: "index.html", Err: fs.ErrNotExist}
	}

	return http.FS(sub), nil
}
