package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/situgas/internal/observability/logging"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Gin(GinConfig{
		SkipPaths:  []string{"/health/live"},
		Module:     logging.Module("test"),
		TracerName: "test",
	}))
	r.Use(PanicRecoveryGin())
	return r
}

func TestGin_SetsRequestID(t *testing.T) {
	r := newTestEngine()

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "generates id when missing", header: "", wantSame: false},
		{name: "keeps valid incoming id", header: "0b6f1c7e-8a65-4a4e-9d6c-2f7a4c3b1e11", wantSame: true},
		{name: "replaces malformed id", header: "bogus", wantSame: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(logging.RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			got := w.Header().Get(logging.RequestIDHeader)
			if got == "" {
				t.Fatal("response is missing the request id header")
			}
			if got != seen {
				t.Errorf("context request id %q does not match header %q", seen, got)
			}
			if tt.wantSame && got != tt.header {
				t.Errorf("got %q, want %q", got, tt.header)
			}
			if !tt.wantSame && got == tt.header {
				t.Errorf("expected a fresh request id, got %q", got)
			}
		})
	}
}

func TestGin_SkipPaths(t *testing.T) {
	r := newTestEngine()
	r.GET("/health/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Header().Get(logging.RequestIDHeader) != "" {
		t.Error("skipped path should not get a request id")
	}
}

func TestPanicRecoveryGin(t *testing.T) {
	r := newTestEngine()
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
