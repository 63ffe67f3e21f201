package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Port  int    `yaml:"port"`
	valid bool
}

func (s *sample) Validate() error {
	if s.Port == 0 {
		return errors.New("port is required")
	}
	s.valid = true
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SEOSCOUT_TEST_NAME", "scout")
	path := writeFile(t, "name: ${SEOSCOUT_TEST_NAME}\nport: 9090\n")

	var s sample
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "scout" || s.Port != 9090 || !s.valid {
		t.Errorf("got %+v", s)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeFile(t, "name: x\n")
	var s sample
	err := Load(path, &s)
	if err == nil || !strings.Contains(err.Error(), "port is required") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	s := sample{Name: "default", Port: 8080}
	if err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &s); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if s.Name != "default" || !s.valid {
		t.Errorf("got %+v", s)
	}
}

func TestLoadOptional_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "port: 7000\n")
	s := sample{Name: "default", Port: 8080}
	if err := LoadOptional(path, &s); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if s.Name != "default" || s.Port != 7000 {
		t.Errorf("got %+v", s)
	}
}

func TestLoadOptional_MissingFileStillValidates(t *testing.T) {
	var s sample
	if err := LoadOptional("", &s); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_EmptyFileKeepsTarget(t *testing.T) {
	path := writeFile(t, "")
	s := sample{Name: "default", Port: 8080}
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "default" || s.Port != 8080 {
		t.Errorf("got %+v", s)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeFile(t, "port: 9090\nprot: 1\n")
	var s sample
	if err := Load(path, &s); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("SEOSCOUT_TEST_SET", "value")
	t.Setenv("SEOSCOUT_TEST_EMPTY", "")

	tests := []struct {
		in, want string
	}{
		{"${SEOSCOUT_TEST_SET}", "value"},
		{"$SEOSCOUT_TEST_SET/x", "value/x"},
		{"${SEOSCOUT_TEST_SET:-fallback}", "value"},
		{"${SEOSCOUT_TEST_EMPTY:-fallback}", "fallback"},
		{"${SEOSCOUT_TEST_UNSET_XYZ:-./seoscout.db}", "./seoscout.db"},
		{"${SEOSCOUT_TEST_UNSET_XYZ}", ""},
	}
	for _, tt := range tests {
		if got := Expand(tt.in); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
