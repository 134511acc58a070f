// 17 Mar 2025

// Package runio puts prediction runs on disk. Each run gets its own
// directory under a base directory, named either by the user or by a
// timestamp, and the helpers here write the JSON and structure files
// into it.
package runio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SanitizeName makes a string safe to use as a file or directory
// name. Spaces become underscores and anything that is not
// alphanumeric, dash, underscore or dot is dropped.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(strings.TrimSpace(name), " ", "_") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Timestamp is the UTC time in a form that sorts and survives being
// part of a filename.
func Timestamp() string {
	return time.Now().UTC().Format("20060102T150405Z")
}

// RunName picks the name for a run. A usable user-supplied name wins,
// otherwise we make one from the prefix and the clock.
func RunName(prefix, outputName string) string {
	if s := SanitizeName(outputName); s != "" {
		return s
	}
	return prefix + "_" + Timestamp()
}

// CreateRunDir makes the directory for one run under baseDir and
// returns its path and the run name used for the files inside it.
func CreateRunDir(baseDir, outputName, prefix string) (string, string, error) {
	name := RunName(prefix, outputName)
	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}
	return dir, name, nil
}

// SaveJSON writes v as indented JSON.
func SaveJSON(v any, path string) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// LoadJSON reads a JSON file into v.
func LoadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// SaveText writes a structure or any other text file.
func SaveText(s, path string) error {
	return os.WriteFile(path, []byte(s), 0644)
}
