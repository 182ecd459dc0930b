package http

import (
	"io"
	"net/http"
	"os"
	"path"

	"github.com/m-mizutani/goerr/v2"
)

// StaticHandler serves the embedded frontend files and falls back to
// index.html for unknown paths so client-side routes resolve
type StaticHandler struct {
	fileSystem http.FileSystem
	indexFile  []byte
}

// NewStaticHandler creates a new static file handler. It preloads
// index.html so the fallback does not depend on the filesystem per request.
func NewStaticHandler(filesystem http.FileSystem) (*StaticHandler, error) {
	indexFile, err := filesystem.Open("/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open index.html for static handler")
	}
	defer indexFile.Close()

	indexContent, err := io.ReadAll(indexFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read index.html content")
	}

	return &StaticHandler{
		fileSystem: filesystem,
		indexFile:  indexContent,
	}, nil
}

// ServeHTTP implements the http.Handler interface
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Clean the path to prevent directory traversal
	cleanPath := path.Clean(r.URL.Path)

	file, err := h.fileSystem.Open(cleanPath)
	if err != nil {
		// Unknown paths get index.html, anything else is a real failure
		if os.IsNotExist(err) {
			h.serveIndexFallback(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Directories are not assets, serve the index instead
	if stat.IsDir() {
		h.serveIndexFallback(w, r)
		return
	}

	if contentType := getContentType(cleanPath); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	if _, err := io.Copy(w, file); err != nil {
		http.Error(w, "Failed to serve file", http.StatusInternalServerError)
		return
	}
}

// serveIndexFallback serves the preloaded index.html
func (h *StaticHandler) serveIndexFallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(h.indexFile); err != nil {
		http.Error(w, "Failed to serve index fallback", http.StatusInternalServerError)
		return
	}
}

var mimeTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json; charset=utf-8",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

// getContentType returns the content type for common file extensions
func getContentType(filePath string) string {
	ext := path.Ext(filePath)
	return mimeTypes[ext]
}
