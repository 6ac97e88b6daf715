package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/playperu/lovebird/internal/store"
)

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>lovebird</html>"), 0o644)
	os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('hi')"), 0o644)

	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), Options{
		Engine:   testScoreEngine(),
		Sessions: store.NewMemoryStore(time.Hour),
		SPADir:   dir,
	})

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/app.js", wantStatus: http.StatusOK, wantBody: "console.log"},
		{path: "/result/pepe", wantStatus: http.StatusOK, wantBody: "lovebird"},
		{path: "/api/unknown", wantStatus: http.StatusNotFound, wantBody: `"error"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
