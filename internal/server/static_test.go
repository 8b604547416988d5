package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/jub0bs/cors"

	streamvault "github.com/streamvault-media/streamvault/internal/server/config"
)

const indexBody = "<html><body>streamvault</body></html>"

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"index.html":            {Data: []byte(indexBody)},
		"assets/app-4f2a91.js":  {Data: []byte("console.log('streamvault')")},
		"assets/app-4f2a91.css": {Data: []byte("body{margin:0}")},
		"favicon.ico":           {Data: []byte{0x00, 0x01}},
	}
}

// newTestRouter builds a fully wired router over an in-memory bundle.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	cfg := &streamvault.ServerEnvironment{
		Environment:    "test",
		Host:           "127.0.0.1",
		Port:           3000,
		AppVersion:     "1.0.0",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		CatalogOrigin:  "https://api.themoviedb.org",
	}

	publicMiddleware, err := cors.NewMiddleware(cors.Config{
		Origins: []string{"*"},
		Methods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	})
	if err != nil {
		t.Fatalf("failed to create CORS middleware: %v", err)
	}

	router := chi.NewRouter()
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	NewServer(cfg, &streamvault.CORSConfigs{Public: publicMiddleware}, testLogger, testAssets(), router)

	return router
}

func TestSPAFallback(t *testing.T) {
	router := newTestRouter(t)

	// every unmatched path answers 200 with the entry document - this is the
	// intended SPA hosting contract, not a routing bug
	tests := []struct {
		name string
		path string
	}{
		{"root", "/"},
		{"client-side route", "/movies/550"},
		{"nonexistent path", "/this/does/not/exist"},
		{"deep nonsense path", "/a/b/c/d/e/f"},
		{"path with dots", "/../index.html/.."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
			}
			if rr.Body.String() != indexBody {
				t.Errorf("body = %q, want entry document", rr.Body.String())
			}
			if cc := rr.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("Cache-Control = %q, want no-cache for the entry document", cc)
			}
		})
	}
}

func TestStaticAssetServing(t *testing.T) {
	router := newTestRouter(t)

	const immutable = "public, max-age=31536000, immutable"

	tests := []struct {
		name            string
		path            string
		wantBody        string
		wantContentType string
		wantCache       string
	}{
		{"javascript bundle", "/assets/app-4f2a91.js", "console.log('streamvault')", "javascript", immutable},
		{"stylesheet", "/assets/app-4f2a91.css", "body{margin:0}", "text/css", immutable},
		// dot-dot segments must be resolved, not rejected, when they still
		// land on a real bundle file
		{"asset path with dot-dot segments", "/assets/../assets/app-4f2a91.js", "console.log('streamvault')", "javascript", immutable},
		// only the fingerprinted bundle dir is immutable; other bundle files
		// can change between deploys
		{"favicon", "/favicon.ico", "\x00\x01", "", "public, max-age=3600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
			}
			if rr.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rr.Body.String(), tt.wantBody)
			}
			if cc := rr.Header().Get("Cache-Control"); cc != tt.wantCache {
				t.Errorf("Cache-Control = %q, want %q", cc, tt.wantCache)
			}
			if tt.wantContentType != "" {
				if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, tt.wantContentType) {
					t.Errorf("Content-Type = %q, want it to contain %q", ct, tt.wantContentType)
				}
			}
		})
	}
}

func TestEntryDocumentMissing(t *testing.T) {
	// a bundle without index.html means the deployment is broken; the server
	// must answer 500 JSON rather than crash
	spa := NewSPAHandler(fstest.MapFS{})

	req := httptest.NewRequest("GET", "/whatever", nil)
	rr := httptest.NewRecorder()
	spa.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(rr.Body.String(), "error_code") {
		t.Errorf("expected a JSON error body, got %q", rr.Body.String())
	}
}

func TestOpsRoutesNotShadowedBySPA(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/metrics", "/version"} {
		req := httptest.NewRequest("GET", path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("GET %s: got status %d, want %d", path, rr.Code, http.StatusOK)
		}
		if rr.Body.String() == indexBody {
			t.Errorf("GET %s answered the entry document instead of the ops handler", path)
		}
	}
}
