// 17 Mar 2025

package runio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/mjcolella/boltzpost/pkg/runio"
)

var sanitizeData = []struct{ in, want string }{
	{"My Protein (v2)", "My_Protein_v2"},
	{"kinase_job", "kinase_job"},
	{"  padded  ", "padded"},
	{"a/b\\c:d", "abcd"},
	{"model.cif", "model.cif"},
	{"x-y_z.0", "x-y_z.0"},
	{"", ""},
	{"///", ""},
}

func TestSanitizeName(t *testing.T) {
	for i, d := range sanitizeData {
		if got := SanitizeName(d.in); got != d.want {
			t.Errorf("case %d: SanitizeName(%q) = %q, want %q", i, d.in, got, d.want)
		}
	}
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp()
	if len(ts) != 16 {
		t.Errorf("timestamp %q has length %d, want 16", ts, len(ts))
	}
	if ts[8] != 'T' || ts[15] != 'Z' {
		t.Errorf("timestamp %q looks wrong", ts)
	}
}

func TestRunName(t *testing.T) {
	if got := RunName("boltz2", "my run"); got != "my_run" {
		t.Errorf("user name should win, got %q", got)
	}
	got := RunName("boltz2", "")
	if !strings.HasPrefix(got, "boltz2_") || len(got) != len("boltz2_")+16 {
		t.Errorf("generated name %q looks wrong", got)
	}
	// A name that sanitizes to nothing falls back to the clock too.
	if got := RunName("boltz2", "///"); !strings.HasPrefix(got, "boltz2_") {
		t.Errorf("unusable name should fall back, got %q", got)
	}
}

func TestCreateRunDir(t *testing.T) {
	base := t.TempDir()
	dir, name, err := CreateRunDir(base, "run one", "boltz2")
	if err != nil {
		t.Fatal(err)
	}
	if name != "run_one" {
		t.Error("name wrong:", name)
	}
	if dir != filepath.Join(base, "run_one") {
		t.Error("dir wrong:", dir)
	}
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		t.Error("run directory not created:", err)
	}
}

func TestSaveLoadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.json")
	in := map[string]any{"a": 1.5, "b": "two"}
	if err := SaveJSON(in, p); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "\n  \"a\"") {
		t.Error("output should be indented, got:", string(b))
	}
	var out map[string]any
	if err := LoadJSON(p, &out); err != nil {
		t.Fatal(err)
	}
	if out["a"] != 1.5 || out["b"] != "two" {
		t.Error("round trip wrong:", out)
	}
	if err := LoadJSON(filepath.Join(t.TempDir(), "gone.json"), &out); err == nil {
		t.Error("missing file should be an error")
	}
}
