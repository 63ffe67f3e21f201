// Package planfile reads persisted site plans back into outline sources.
//
// A plan file is JSON, YAML, or Markdown with a YAML frontmatter block. Both
// the flat plan record and the full analysis report (plan fields nested under
// "site_plan") are accepted.
package planfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/seoscout/internal/apperr"
	"github.com/starford/seoscout/internal/outline"
)

// OutlineSuffix marks generated outline files, which are never plan sources.
const OutlineSuffix = ".outline.md"

// IsPlanFile reports whether name has a plan file extension.
func IsPlanFile(name string) bool {
	if strings.HasSuffix(name, OutlineSuffix) {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml", ".md":
		return true
	}
	return false
}

// OutlinePath returns the outline file written next to a plan file.
func OutlinePath(planPath string) string {
	return strings.TrimSuffix(planPath, filepath.Ext(planPath)) + OutlineSuffix
}

// Read loads and parses the plan file at path.
func Read(path string) (outline.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return outline.Source{}, fmt.Errorf("planfile: read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes a plan file. name selects the format by extension; content
// starting with "{" is always JSON and content starting with "---" is always
// Markdown with frontmatter.
func Parse(name string, data []byte) (outline.Source, error) {
	fields, err := decode(name, data)
	if err != nil {
		return outline.Source{}, fmt.Errorf("planfile: %s: %w: %v", name, apperr.ErrInvalidPlan, err)
	}

	nested, _ := fields["site_plan"].(map[string]interface{})
	src := outline.Source{
		Keyword:     lookup("keyword", fields, nested),
		Intent:      lookup("intent", fields, nested),
		Type:        lookup("type", fields, nested),
		OutlineKind: outline.Kind(lookup("outline_kind", fields, nested)),
	}
	if err := src.Validate(); err != nil {
		return outline.Source{}, fmt.Errorf("planfile: %s: %w", name, err)
	}
	return src, nil
}

func decode(name string, data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	var fields map[string]interface{}

	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, err
		}
	case bytes.HasPrefix(trimmed, []byte("---")) || strings.EqualFold(filepath.Ext(name), ".md"):
		fm, ok, err := splitFrontmatter(data)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no frontmatter block")
		}
		fields = fm
	default:
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
	}
	if fields == nil {
		return nil, fmt.Errorf("empty document")
	}
	return fields, nil
}

// splitFrontmatter decodes the YAML block between leading --- delimiters.
// ok is false when the content has no complete frontmatter block.
func splitFrontmatter(data []byte) (map[string]interface{}, bool, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, false, nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, false, nil
	}

	var fm map[string]interface{}
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return nil, false, err
	}
	return fm, true, nil
}

// lookup prefers the top-level value and falls back to the nested plan.
func lookup(key string, top, nested map[string]interface{}) string {
	if s := scalar(top[key]); s != "" {
		return s
	}
	return scalar(nested[key])
}

func scalar(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}, []interface{}:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
