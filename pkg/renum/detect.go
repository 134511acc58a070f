// 13 Mar 2025
// Decide if a structure file is mmcif or old PDB format. First look
// at the contents, then fall back to the file name.

package renum

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mjcolella/boltzpost/pkg/zopen"
)

// Format says which of the two supported file formats we have, or
// that the caller wants us to work it out.
type Format byte

const (
	PdbFmt Format = iota
	MmcifFmt
	AutoFmt
)

func (f Format) String() string {
	switch f {
	case MmcifFmt:
		return "mmcif"
	case AutoFmt:
		return "auto"
	}
	return "pdb"
}

// ParseFormat turns a command line word into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "mmcif", "cif":
		return MmcifFmt, nil
	case "pdb":
		return PdbFmt, nil
	case "auto", "":
		return AutoFmt, nil
	}
	return AutoFmt, fmt.Errorf("unknown file format %q, want mmcif, pdb or auto", s)
}

// pdbStarts are the record types a PDB file can plausibly open with.
var pdbStarts = []string{"ATOM", "HETATM", "HEADER", "TITLE", "REMARK", "CRYST"}

// DetectText classifies file contents. Anything containing "data_" or
// "_atom_site." is mmcif. Text opening with a known PDB record type
// is PDB. Otherwise the extension of fname decides, and when that
// says nothing either, we default to PDB rather than give up. The
// default is permissive on purpose, so odd legacy files still go
// through the fixed column path.
func DetectText(text string, fname string) Format {
	if strings.Contains(text, "data_") || strings.Contains(text, "_atom_site.") {
		return MmcifFmt
	}
	t := strings.TrimSpace(text)
	for _, w := range pdbStarts {
		if strings.HasPrefix(t, w) {
			return PdbFmt
		}
	}
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".cif", ".mmcif":
		return MmcifFmt
	}
	return PdbFmt
}

// DetectFileFormat reads a structure file, decompressing if need be,
// and classifies it.
func DetectFileFormat(path string) (Format, error) {
	c, err := zopen.ReadFile(path)
	if err != nil {
		return PdbFmt, err
	}
	defer c.Close()
	return DetectText(string(c.Bytes()), path), nil
}
