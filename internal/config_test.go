package internal

import (
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/seoscout/pkg/config"
)

func TestAuthConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         AuthConfig
		wantErr     string
		wantMode    string
		wantEnabled bool
	}{
		{name: "disabled", cfg: AuthConfig{Mode: "disabled"}, wantMode: AuthModeDisabled},
		{name: "empty mode defaults to disabled", cfg: AuthConfig{}, wantMode: AuthModeDisabled},
		{name: "token", cfg: AuthConfig{Mode: "token", Token: "mysecret"}, wantMode: AuthModeToken, wantEnabled: true},
		{name: "token without value", cfg: AuthConfig{Mode: "token"}, wantErr: "token is empty"},
		{name: "unknown mode", cfg: AuthConfig{Mode: "magic", Token: "x"}, wantErr: "mode: must be a valid value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", cfg.Mode, tt.wantMode)
			}
			if cfg.AuthEnabled() != tt.wantEnabled {
				t.Errorf("AuthEnabled = %v", cfg.AuthEnabled())
			}
		})
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Search.Enabled() || cfg.Trends.Enabled() {
		t.Error("backends should be disabled without a base URL")
	}
}

func TestSearchConfig_InvalidURL(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Search.BaseURL = "not a url"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid search URL should fail")
	}
	if !strings.HasPrefix(err.Error(), "search: base_url:") {
		t.Errorf("error should name the section and key: %v", err)
	}
}

func TestTrendsConfig_BatchSize(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Trends.BaseURL = "http://localhost:8090"
	cfg.Trends.BatchSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero batch size should fail")
	}
}

func TestAnalysisConfig_Workers(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Analysis.BatchWorkers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero workers should fail")
	}
	cfg.Analysis.BatchWorkers = 2
	cfg.Analysis.LongtailCount = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative longtail count should fail")
	}
}

func TestExampleConfig_Loads(t *testing.T) {
	t.Setenv("SEOSCOUT_SEARCH_URL", "http://localhost:8888")

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load("../config/config.example.yaml", cfg); err != nil {
		t.Fatalf("load example config: %v", err)
	}
	if !cfg.Search.Enabled() {
		t.Error("search should be enabled from the environment")
	}
	if cfg.Trends.Enabled() {
		t.Error("trends should stay disabled")
	}
	if cfg.Analysis.LongtailCount != 20 || cfg.Trends.MinDelay != time.Second {
		t.Errorf("unexpected values: %+v %+v", cfg.Analysis, cfg.Trends)
	}
}
