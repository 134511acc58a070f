// 13 Mar 2025
// The entry points. Read a whole file, transform it in memory, write
// a whole file. The input is never touched and the output is written
// in one go, though not crash-atomically. A caller who needs that
// should write to a temporary path and rename.

package renum

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mjcolella/boltzpost/pkg/zopen"
)

// readText slurps the input, transparently handling gzipped files.
func readText(inpath string) (string, error) {
	c, err := zopen.ReadFile(inpath)
	if err != nil {
		return "", err
	}
	defer c.Close()
	return string(c.Bytes()), nil
}

// RenumberMmcif rewrites the residue numbers in an mmcif file so
// numbering starts at startRes instead of 1, and writes the result to
// outpath. The tables touched are _atom_site, _pdbx_poly_seq_scheme,
// _entity_poly_seq and _ma_qa_metric_local. HETATM rows keep their
// numbering. An empty chain means every chain.
func RenumberMmcif(inpath string, startRes int, outpath string, chain string) error {
	text, err := readText(inpath)
	if err != nil {
		return err
	}
	out := newRenumJob(startRes, chain).mmcifText(text)
	return os.WriteFile(outpath, []byte(out), 0644)
}

// RenumberPdb does the same for the old fixed column PDB format,
// rewriting ATOM, TER and ANISOU records and leaving HETATM alone.
func RenumberPdb(inpath string, startRes int, outpath string, chain string) error {
	text, err := readText(inpath)
	if err != nil {
		return err
	}
	out := pdbText(text, startRes-1, chain)
	return os.WriteFile(outpath, []byte(out), 0644)
}

// DfltOutPath is where output goes when the caller does not say:
// the input name with "_renumbered" wedged in before the extension.
func DfltOutPath(inpath string) string {
	ext := filepath.Ext(inpath)
	return strings.TrimSuffix(inpath, ext) + "_renumbered" + ext
}

// RenumberStructure renumbers a structure file of either format and
// returns the output path used. With format AutoFmt the file decides
// for itself. With outpath "" the output lands next to the input. A
// missing input gives an error satisfying errors.Is(err,
// fs.ErrNotExist) before anything is written.
func RenumberStructure(inpath string, startRes int, outpath string, chain string,
	format Format) (string, error) {
	if _, err := os.Stat(inpath); err != nil {
		return "", err
	}
	if format == AutoFmt {
		var err error
		if format, err = DetectFileFormat(inpath); err != nil {
			return "", err
		}
	}
	if outpath == "" {
		outpath = DfltOutPath(inpath)
	}
	var err error
	if format == MmcifFmt {
		err = RenumberMmcif(inpath, startRes, outpath, chain)
	} else {
		err = RenumberPdb(inpath, startRes, outpath, chain)
	}
	if err != nil {
		return "", err
	}
	return outpath, nil
}
