package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadKeywords_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.txt")
	if err := os.WriteFile(path, []byte("ai generator\n\n  seo tips  \r\n\t\npdf converter"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readKeywords(path)
	if err != nil {
		t.Fatalf("readKeywords: %v", err)
	}
	want := []string{"ai generator", "seo tips", "pdf converter"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReadKeywords_Missing(t *testing.T) {
	if _, err := readKeywords(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOptional(t *testing.T) {
	vol, score := 1200, 61.5
	if got := optional(&vol); got != "1200" {
		t.Errorf("int = %q", got)
	}
	if got := optional(&score); got != "61.50" {
		t.Errorf("float = %q", got)
	}
	if got := optional[int](nil); got != "-" {
		t.Errorf("nil = %q", got)
	}
}

// run executes the root command with a config rooted in a temp dir and
// returns what it printed.
func run(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cfg := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("sqlite:\n  path: %q\noutput:\n  dir: %q\nplans:\n  dir: %q\n",
		filepath.Join(dir, "seoscout.db"), filepath.Join(dir, "output"), filepath.Join(dir, "plans"))
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })

	argv := append([]string{"seoscout", "--config", cfg}, args...)
	if err := newRootCommand().Run(context.Background(), argv); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return buf.String()
}

// savedPath returns the path printed after label.
func savedPath(t *testing.T, out, label string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, label); ok {
			return strings.TrimSpace(rest)
		}
	}
	t.Fatalf("%q not found in output:\n%s", label, out)
	return ""
}

func TestIntentCommand_WritesReportAndPlan(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "reports")
	out := run(t, dir, "intent", "--word", "AI Generator", "--longtail", "3", "--output-dir", outDir)

	report := savedPath(t, out, "Intent report saved to:")
	plan := savedPath(t, out, "Site plan saved to:")
	if filepath.Dir(report) != outDir || filepath.Dir(plan) != outDir {
		t.Errorf("files outside %s: %s, %s", outDir, report, plan)
	}
	if !strings.HasPrefix(filepath.Base(report), "ai_generator_intent_") || filepath.Ext(report) != ".json" {
		t.Errorf("report name = %s", report)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	var r struct {
		Keyword       string   `json:"keyword"`
		Intent        string   `json:"intent"`
		LongtailWords []string `json:"longtail_words"`
	}
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatal(err)
	}
	if r.Keyword != "ai generator" || r.Intent != "transactional" || len(r.LongtailWords) != 3 {
		t.Errorf("report = %+v", r)
	}

	md, err := os.ReadFile(plan)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(md), "---\nkeyword: ai generator\n") {
		t.Errorf("plan frontmatter = %q", md[:min(len(md), 60)])
	}
	if !strings.Contains(out, "Longtails:  3\n") {
		t.Errorf("summary missing longtail count:\n%s", out)
	}
}

func TestOutlineCommand_WritesRequestedFile(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "pdf.yaml")
	if err := os.WriteFile(planPath, []byte("keyword: pdf converter\nintent: transactional\ntype: Online tool site\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "articles", "pdf.md")

	out := run(t, dir, "outline", "--plan", planPath, "--output", target)

	if got := savedPath(t, out, "Outline saved to:"); got != target {
		t.Errorf("saved to %s, want %s", got, target)
	}
	md, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "## Target keywords (") {
		t.Errorf("outline missing keyword summary:\n%s", md)
	}
	if !strings.Contains(out, "Outline kind:     tool\n") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}
