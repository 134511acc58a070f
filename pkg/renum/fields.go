// 12 Mar 2025
// Split a line at spaces and quotes, but remember where each piece
// came from, so we can put a replacement back without disturbing the
// spacing around it.

package renum

const (
	squote byte = '\''
	dquote byte = '"'
)

// A field is one token from a line along with the character span it
// occupies. start and end index into the original line, end exclusive.
// For a quoted field the quote characters belong to the span.
type field struct {
	start int
	end   int
	val   string
}

// iswhite only has to know about spaces and tabs. We work line by
// line, so newlines never turn up.
func iswhite(b byte) bool {
	return b == ' ' || b == '\t'
}

// fieldPositions breaks a line into fields. Fields are separated by
// runs of spaces or tabs. A field starting with a single or double
// quote runs to the matching quote, inclusive, or to the end of the
// line if the quote is never closed. There is no escaping in this
// format. An empty line gives back an empty slice.
func fieldPositions(line string) []field {
	var fields []field
	i := 0
	for i < len(line) {
		for i < len(line) && iswhite(line[i]) {
			i++
		}
		if i >= len(line) {
			break
		}
		start := i
		if line[i] == squote || line[i] == dquote {
			q := line[i]
			i++
			for i < len(line) && line[i] != q {
				i++
			}
			if i < len(line) {
				i++ // take the closing quote too
			}
		} else {
			for i < len(line) && !iswhite(line[i]) {
				i++
			}
		}
		fields = append(fields, field{start: start, end: i, val: line[start:i]})
	}
	return fields
}

// replaceField returns line with the ndx'th field swapped for newval.
// Everything before the field's start and after its end is copied
// verbatim, so column padding survives even when the replacement has
// a different width. An index past the last field is a deliberate
// no-op. Short or odd lines come back unchanged rather than as errors.
func replaceField(line string, ndx int, newval string) string {
	fields := fieldPositions(line)
	if ndx >= len(fields) {
		return line
	}
	f := fields[ndx]
	return line[:f.start] + newval + line[f.end:]
}
