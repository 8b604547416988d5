package server

import (
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/streamvault-media/streamvault/internal/apperrors"
	"github.com/streamvault-media/streamvault/internal/logger"
	"github.com/streamvault-media/streamvault/internal/server/responses"
)

const entryDocument = "index.html"

// SPAHandler serves the prebuilt single-page-application bundle.
//
// Requests that match a file in the bundle are served directly. Files under
// assets/ carry the bundler's content fingerprint in their name and get
// immutable cache headers; other bundle files (favicon and the like) get a
// short-lived policy. Everything else is answered with the entry document so
// client-side routing can take over - including unknown and malformed paths.
// Answering 200 for nonexistent resources is the intended contract for SPA
// hosting, not an oversight.
type SPAHandler struct {
	assets fs.FS
}

func NewSPAHandler(assets fs.FS) *SPAHandler {
	return &SPAHandler{assets: assets}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")

	if name == "" || name == "." || name == entryDocument {
		h.serveEntryDocument(w, r)
		return
	}

	info, err := fs.Stat(h.assets, name)
	if err != nil || info.IsDir() {
		h.serveEntryDocument(w, r)
		return
	}

	if strings.HasPrefix(name, "assets/") {
		// fingerprinted filenames - a cached copy can never go stale
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}

	// ServeFileFS rejects any request path containing "..", so hand it the
	// cleaned path rather than the raw one. It handles Content-Type detection
	// and conditional requests.
	cleaned := new(http.Request)
	*cleaned = *r
	cleaned.URL = new(url.URL)
	*cleaned.URL = *r.URL
	cleaned.URL.Path = "/" + name

	http.ServeFileFS(w, cleaned, h.assets, name)
}

// serveEntryDocument writes index.html for the requested path without
// redirecting, so the browser address bar keeps the client-side route.
func (h *SPAHandler) serveEntryDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := fs.ReadFile(h.assets, entryDocument)
	if err != nil {
		// the bundle dir is misconfigured or the build was not copied in
		requestLogger := logger.ContextMiddlewareLogger(r.Context())
		requestLogger.Error("entry document missing from static asset bundle",
			slog.String("error", err.Error()),
		)
		responses.RespondWithError(w, r, http.StatusInternalServerError,
			apperrors.ErrCodeInternalError, "Internal Server Error")
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
