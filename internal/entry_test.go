package internal

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/seoscout/internal/sse"
)

func testApp(t *testing.T, mutate func(*Config)) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = filepath.Join(dir, "seoscout.db")
	cfg.Output.Dir = filepath.Join(dir, "output")
	cfg.Plans.Dir = filepath.Join(dir, "plans")
	if mutate != nil {
		mutate(cfg)
	}

	app, err := NewApp(WithConfig(cfg), WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func TestNewApp_RequiresConfig(t *testing.T) {
	if _, err := NewApp(); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestNewApp_OutputDirOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = filepath.Join(dir, "x.db")
	cfg.Plans.Dir = filepath.Join(dir, "plans")
	override := filepath.Join(dir, "elsewhere")

	app, err := NewApp(WithConfig(cfg), WithOutputDir(override), WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()
	if app.Output.Root() != override {
		t.Errorf("output root = %s, want %s", app.Output.Root(), override)
	}
}

func TestRootRouter_HealthAndMetrics(t *testing.T) {
	app := testApp(t, nil)
	router := NewRootRouter(app, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s = %d, want 200", path, w.Code)
		}
	}

	// An analysis shows up in the metrics output.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/analyze",
		bytes.NewReader([]byte(`{"keyword":"ai generator","longtail":2}`))))
	if w.Code != http.StatusCreated {
		t.Fatalf("analyze = %d, body = %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `seoscout_keyword_analyses_total{intent="transactional"}`) {
		t.Error("metrics should include the analysis counter")
	}
}

func TestRootRouter_TokenAuth(t *testing.T) {
	app := testApp(t, func(c *Config) {
		c.Auth.Mode = AuthModeToken
		c.Auth.Token = "s3cret"
	})
	broker := sse.NewBroker(time.Second)
	defer broker.Close()
	router := NewRootRouter(app, broker)

	tests := []struct {
		path string
		want int
	}{
		{"/health/live", http.StatusOK},
		{"/api/keywords", http.StatusUnauthorized},
		{"/api/events", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != tt.want {
			t.Errorf("%s = %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}

func TestNewApp_BackendsFollowConfig(t *testing.T) {
	app := testApp(t, nil)
	if _, err := app.Service.Discover(t.Context(), 5, 0); err == nil {
		t.Error("discover without trends backend should fail")
	}
	if _, err := app.Service.Related(t.Context(), "seo"); err == nil {
		t.Error("related without search backend should fail")
	}
}
