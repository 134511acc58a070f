// 12 Mar 2025

// Package renum rewrites residue numbers in structure prediction
// output. Prediction servers number residues from 1, but when one
// models a domain out of a longer sequence, the biological numbering
// starts somewhere else. We add a constant offset to every residue
// number field and leave every other byte of the file alone.
//
// The mmcif side works on four loop tables, each with its own set of
// column headers. We never build a real cif parser. We only track
// which table we are in, map the declared column names to positions
// and rewrite the numeric fields in place.
package renum

import (
	"sort"
	"strconv"
	"strings"
)

// A section is one mmcif loop table whose residue columns get
// rewritten. cols holds the column names in declared order, filled
// out while we read the table's header lines. active says whether the
// lines we are currently reading belong to this table.
type section struct {
	prefix    string // header line prefix such as "_atom_site."
	cols      []string
	active    bool
	transform func(j *renumJob, sec *section, line string) string
}

// colNdx says where a named column sits in this table, or -1 if the
// table does not declare it. A missing column just means the check
// using it is skipped.
func (sec *section) colNdx(name string) int {
	for i, c := range sec.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// A renumJob is the state for renumbering one document. There is no
// state shared between jobs, so calls are independent of each other.
type renumJob struct {
	offset int    // startResidue - 1, added to every residue number
	chain  string // only touch this chain. "" means every chain.
	secs   []*section
}

func newRenumJob(startRes int, chain string) *renumJob {
	j := &renumJob{offset: startRes - 1, chain: chain}
	j.secs = []*section{
		{prefix: "_atom_site.", transform: atomSiteRow},
		{prefix: "_pdbx_poly_seq_scheme.", transform: polySeqRow},
		{prefix: "_entity_poly_seq.", transform: entityPolyRow},
		{prefix: "_ma_qa_metric_local.", transform: qaMetricRow},
	}
	return j
}

// headerFor returns the section whose header prefix starts this
// line, or nil for an ordinary line.
func (j *renumJob) headerFor(trimmed string) *section {
	for _, sec := range j.secs {
		if strings.HasPrefix(trimmed, sec.prefix) {
			return sec
		}
	}
	return nil
}

// setActive marks one section as the current one. The sections are
// mutually exclusive, so everything else goes inactive. Called with
// nil at a "#" or "loop_" line to leave whatever table we were in.
func (j *renumJob) setActive(sec *section) {
	for _, s := range j.secs {
		s.active = s == sec
	}
}

func (j *renumJob) activeSec() *section {
	for _, s := range j.secs {
		if s.active {
			return s
		}
	}
	return nil
}

// shift applies the offset to one residue number. The bool comes back
// false for anything that does not parse as an integer. The caller
// then leaves that field alone and carries on. Nothing along this
// path can abort the file.
func (j *renumJob) shift(val string) (string, bool) {
	n, err := strconv.Atoi(val)
	if err != nil {
		return "", false
	}
	return strconv.Itoa(n + j.offset), true
}

// chainDiffers is the chain filter for a data row. With no filter set
// every row passes. With a filter, a row passes when its chain column
// matches, or when the table does not declare the chain column at all.
func (j *renumJob) chainDiffers(fields []field, asymNdx int) bool {
	if j.chain == "" || asymNdx < 0 {
		return false
	}
	return fields[asymNdx].val != j.chain
}

// atomSiteRow handles one _atom_site data row. HETATM rows belong to
// ligands and waters and keep their original numbering. label_seq_id
// and auth_seq_id both get the offset. The first replacement can
// change the line's length, so we tokenize again before finding the
// second field's span.
func atomSiteRow(j *renumJob, sec *section, line string) string {
	fields := fieldPositions(line)
	if len(fields) < len(sec.cols) {
		return line
	}
	groupNdx := sec.colNdx("group_PDB")
	seqNdx := sec.colNdx("label_seq_id")
	authNdx := sec.colNdx("auth_seq_id")
	asymNdx := sec.colNdx("label_asym_id")

	if groupNdx >= 0 && fields[groupNdx].val == "HETATM" {
		return line
	}
	if j.chainDiffers(fields, asymNdx) {
		return line
	}
	if seqNdx >= 0 && fields[seqNdx].val != "." {
		if nv, ok := j.shift(fields[seqNdx].val); ok {
			line = replaceField(line, seqNdx, nv)
			fields = fieldPositions(line)
		}
	}
	if authNdx >= 0 && authNdx < len(fields) && fields[authNdx].val != "?" {
		if nv, ok := j.shift(fields[authNdx].val); ok {
			line = replaceField(line, authNdx, nv)
		}
	}
	return line
}

// isSentinel says whether a field holds one of the cif "not
// applicable" markers. Those are never numbers and never rewritten.
func isSentinel(val string) bool {
	return val == "." || val == "?"
}

// polySeqRow handles one _pdbx_poly_seq_scheme row. Three columns
// carry residue numbers here. We work out all the new values first,
// then apply them from the highest field index down, so a width
// change in one replacement cannot shift the span of one still to be
// applied.
func polySeqRow(j *renumJob, sec *section, line string) string {
	fields := fieldPositions(line)
	if len(fields) < len(sec.cols) {
		return line
	}
	if j.chainDiffers(fields, sec.colNdx("asym_id")) {
		return line
	}
	type repl struct {
		ndx int
		val string
	}
	var repls []repl
	for _, name := range []string{"seq_id", "pdb_seq_num", "auth_seq_num"} {
		ndx := sec.colNdx(name)
		if ndx < 0 || isSentinel(fields[ndx].val) {
			continue
		}
		if nv, ok := j.shift(fields[ndx].val); ok {
			repls = append(repls, repl{ndx, nv})
		}
	}
	sort.Slice(repls, func(a, b int) bool { return repls[a].ndx > repls[b].ndx })
	for _, r := range repls {
		line = replaceField(line, r.ndx, r.val)
	}
	return line
}

// entityPolyRow handles one _entity_poly_seq row. This table has no
// chain column, only the residue number in "num".
func entityPolyRow(j *renumJob, sec *section, line string) string {
	fields := fieldPositions(line)
	if len(fields) < len(sec.cols) {
		return line
	}
	ndx := sec.colNdx("num")
	if ndx < 0 || isSentinel(fields[ndx].val) {
		return line
	}
	if nv, ok := j.shift(fields[ndx].val); ok {
		line = replaceField(line, ndx, nv)
	}
	return line
}

// qaMetricRow handles one _ma_qa_metric_local row. These are the
// per-residue confidence scores, keyed by chain and residue number.
func qaMetricRow(j *renumJob, sec *section, line string) string {
	fields := fieldPositions(line)
	if len(fields) < len(sec.cols) {
		return line
	}
	if j.chainDiffers(fields, sec.colNdx("label_asym_id")) {
		return line
	}
	ndx := sec.colNdx("label_seq_id")
	if ndx < 0 || isSentinel(fields[ndx].val) {
		return line
	}
	if nv, ok := j.shift(fields[ndx].val); ok {
		line = replaceField(line, ndx, nv)
	}
	return line
}

// colName pulls the column name out of a header line like
// "_atom_site.label_seq_id". The piece between the first and second
// dot is the name.
func colName(trimmed string) string {
	parts := strings.Split(trimmed, ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// mmcifText transforms a whole mmcif document. Lines are kept in
// their original order and reassembled with the separators they came
// with, so anything we do not touch comes out byte for byte the same.
func (j *renumJob) mmcifText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		// A run of header lines opens a table and declares its columns.
		if sec := j.headerFor(trimmed); sec != nil {
			sec.cols = sec.cols[:0]
			for i < len(lines) {
				t := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(t, sec.prefix) {
					break
				}
				sec.cols = append(sec.cols, colName(t))
				out = append(out, lines[i])
				i++
			}
			j.setActive(sec)
			continue
		}

		// "#" on its own, or a new loop_ directive, ends any table.
		if trimmed == "#" || strings.HasPrefix(trimmed, "loop_") {
			j.setActive(nil)
			out = append(out, line)
			i++
			continue
		}

		if sec := j.activeSec(); sec != nil && trimmed != "" && !strings.HasPrefix(trimmed, "_") {
			line = sec.transform(j, sec, line)
		}
		out = append(out, line)
		i++
	}
	return strings.Join(out, "\n")
}
