// 15 Mar 2025

package zopen_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	. "github.com/mjcolella/boltzpost/pkg/zopen"
)

// gzBytes compresses a string in memory.
func gzBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// wrtFile puts bytes in a file under the test's temporary directory.
func wrtFile(t *testing.T, name string, b []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, b, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

const hello = "hello structure file\nwith a second line\n"

func TestWrapMaybePlain(t *testing.T) {
	p := wrtFile(t, "plain.txt", []byte(hello))
	fp, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	rdr, err := WrapMaybe(fp)
	if err != nil {
		t.Fatal("wrapping plain file:", err)
	}
	defer rdr.Close()
	b, err := io.ReadAll(rdr)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != hello {
		t.Errorf("got %q, want %q", b, hello)
	}
}

func TestWrapMaybeGzip(t *testing.T) {
	p := wrtFile(t, "z.txt.gz", gzBytes(t, hello))
	fp, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	rdr, err := WrapMaybe(fp)
	if err != nil {
		t.Fatal("wrapping gzipped file:", err)
	}
	defer rdr.Close()
	b, err := io.ReadAll(rdr)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != hello {
		t.Errorf("got %q, want %q", b, hello)
	}
}

func TestReadFile(t *testing.T) {
	for _, d := range []struct {
		name string
		b    []byte
	}{
		{"plain.cif", []byte(hello)},
		{"comp.cif.gz", gzBytes(t, hello)},
	} {
		p := wrtFile(t, d.name, d.b)
		c, err := ReadFile(p)
		if err != nil {
			t.Fatalf("%s: %v", d.name, err)
		}
		if string(c.Bytes()) != hello {
			t.Errorf("%s: got %q, want %q", d.name, c.Bytes(), hello)
		}
		if err := c.Close(); err != nil {
			t.Errorf("%s: close: %v", d.name, err)
		}
	}
}

// A file over a megabyte takes the mapped path. The contents must be
// the same and Close must release the mapping without complaint.
func TestReadFileBig(t *testing.T) {
	line := strings.Repeat("x", 79) + "\n"
	big := strings.Repeat(line, (1<<20)/len(line)+10)
	p := wrtFile(t, "big.pdb", []byte(big))
	c, err := ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(c.Bytes()) != big {
		t.Error("mapped contents differ from what was written")
	}
	if err := c.Close(); err != nil {
		t.Error("close:", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
