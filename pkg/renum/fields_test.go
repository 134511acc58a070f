// 12 Mar 2025

package renum

import (
	"testing"
)

var fieldData = []struct {
	in   string
	vals []string
}{
	{"ATOM 1 CA ALA A 1", []string{"ATOM", "1", "CA", "ALA", "A", "1"}},
	{"  leading and   trailing  ", []string{"leading", "and", "trailing"}},
	{"a\tb\t c", []string{"a", "b", "c"}},
	{"", nil},
	{"   \t ", nil},
	{`x 'two words' y`, []string{"x", "'two words'", "y"}},
	{`"a b" 'c d'`, []string{`"a b"`, "'c d'"}},
	{`x 'unterminated to the end`, []string{"x", "'unterminated to the end"}},
	{`''`, []string{"''"}},
}

func TestFieldPositions(t *testing.T) {
	for _, fd := range fieldData {
		fields := fieldPositions(fd.in)
		if len(fields) != len(fd.vals) {
			t.Errorf("%q: got %d fields, want %d", fd.in, len(fields), len(fd.vals))
			continue
		}
		for i, f := range fields {
			if f.val != fd.vals[i] {
				t.Errorf("%q field %d: got %q, want %q", fd.in, i, f.val, fd.vals[i])
			}
			if fd.in[f.start:f.end] != f.val {
				t.Errorf("%q field %d: span [%d,%d) does not cover value %q",
					fd.in, i, f.start, f.end, f.val)
			}
		}
	}
}

func TestFieldSpans(t *testing.T) {
	fields := fieldPositions("ATOM 1 CA ALA A 1")
	if fields[0].start != 0 || fields[0].end != 4 {
		t.Error("first field span wrong:", fields[0])
	}
	if fields[1].start != 5 || fields[1].end != 6 {
		t.Error("second field span wrong:", fields[1])
	}
}

var replData = []struct {
	in   string
	ndx  int
	new  string
	want string
}{
	{"ATOM 1 CA", 1, "100", "ATOM 100 CA"},
	{"ATOM   1   CA", 1, "672", "ATOM   672   CA"}, // padding around the field survives
	{"a b c", 0, "xx", "xx b c"},
	{"a b c", 2, "xx", "a b xx"},
	{"a b c", 3, "xx", "a b c"}, // out of range is a no-op
	{"", 0, "xx", ""},
	{"  1  ", 0, "2345", "  2345  "},
}

func TestReplaceField(t *testing.T) {
	for _, rd := range replData {
		if got := replaceField(rd.in, rd.ndx, rd.new); got != rd.want {
			t.Errorf("replaceField(%q, %d, %q) = %q, want %q",
				rd.in, rd.ndx, rd.new, got, rd.want)
		}
	}
}

// Replacing a field must never change how many fields a line has.
func TestReplaceKeepsFieldCount(t *testing.T) {
	lines := []string{
		"ATOM 1 CA ALA A 1 1 11.2",
		"A 1 1 1 1 MET",
	}
	for _, line := range lines {
		before := len(fieldPositions(line))
		got := replaceField(line, 1, "67253")
		if after := len(fieldPositions(got)); after != before {
			t.Errorf("%q: field count changed from %d to %d", line, before, after)
		}
	}
}
