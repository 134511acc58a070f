// 13 Mar 2025
// The old PDB format does not need tokenizing. Record fields live at
// fixed character offsets, so we slice the residue number straight
// out of its columns and splice the new one back in.

package renum

import (
	"fmt"
	"strconv"
	"strings"
)

// PDB columns, counted from zero. The chain identifier is one
// character at offset 21. The residue sequence number occupies
// offsets 22 to 25, right justified and space padded to width 4.
const (
	pdbChainCol = 21
	pdbResBeg   = 22
	pdbResEnd   = 26 // exclusive
)

// pdbRecords are the record types that carry polymer residue
// numbers. HETATM is deliberately not here: ligands and waters keep
// their numbering.
var pdbRecords = []string{"ATOM", "TER", "ANISOU"}

// pdbLine rewrites the residue number columns of one record, or
// returns the line untouched. A blank in the chain column matches any
// requested chain, a leniency some single chain legacy files rely on.
// Lines that are too short or whose residue field is not a number
// pass through unchanged.
func pdbLine(line string, offset int, chain string) string {
	matched := false
	for _, rec := range pdbRecords {
		if strings.HasPrefix(line, rec) {
			matched = true
			break
		}
	}
	if !matched {
		return line
	}
	if chain != "" {
		if len(line) <= pdbChainCol {
			return line
		}
		if c := line[pdbChainCol]; string(c) != chain && c != ' ' {
			return line
		}
	}
	if len(line) < pdbResEnd {
		return line
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[pdbResBeg:pdbResEnd]))
	if err != nil {
		return line
	}
	return line[:pdbResBeg] + fmt.Sprintf("%4d", n+offset) + line[pdbResEnd:]
}

// pdbText applies the offset to every qualifying record in a PDB
// document. Everything else is copied through as it came.
func pdbText(text string, offset int, chain string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = pdbLine(line, offset, chain)
	}
	return strings.Join(lines, "\n")
}
