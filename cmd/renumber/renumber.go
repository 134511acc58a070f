// 14 Mar 2025

// Renumber the residues of a structure file. The prediction output
// numbers residues from 1, so modelling a domain that really starts
// at residue 672 gives a file whose numbering is off by 671. This
// fixes that, for mmcif or old PDB format files.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/mjcolella/boltzpost/pkg/cmmn"
	"github.com/mjcolella/boltzpost/pkg/renum"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] -s startres structfile")
	flag.PrintDefaults()
}

func mymain() int {
	startRes := flag.Int("s", 0, "residue number the first residue should become")
	chain := flag.String("c", "", "only renumber this chain")
	outfile := flag.String("o", "", "output file (default: input name with _renumbered)")
	format := flag.String("f", "auto", "file format: mmcif, pdb or auto")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return cmmn.ExitUsageError
	}
	if *startRes < 1 {
		fmt.Fprintln(os.Stderr, "start residue must be a positive number, got", *startRes)
		usage()
		return cmmn.ExitUsageError
	}
	f, err := renum.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		return cmmn.ExitUsageError
	}

	outpath, err := renum.RenumberStructure(flag.Arg(0), *startRes, *outfile, *chain, f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "renumber:", err)
		return cmmn.ExitFailure
	}
	fmt.Println("wrote", outpath)
	return cmmn.ExitSuccess
}

func main() {
	os.Exit(mymain())
}
