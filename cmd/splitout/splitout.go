// 21 Mar 2025

// Break one saved prediction output into its separate artifacts: the
// structure, a protein-only structure and the score files.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/mjcolella/boltzpost/pkg/cmmn"
	"github.com/mjcolella/boltzpost/pkg/report"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "outputfile")
	fmt.Fprintln(os.Stderr, "The file may be an mmcif or the raw JSON response.")
	flag.PrintDefaults()
}

func mymain() int {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		return cmmn.ExitUsageError
	}
	infile := flag.Arg(0)
	if _, err := os.Stat(infile); err != nil {
		fmt.Fprintln(os.Stderr, "input file:", err)
		return cmmn.ExitFailure
	}

	arts, err := report.SplitStructureFile(infile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "split failed:", err)
		return cmmn.ExitFailure
	}

	keys := make([]string, 0, len(arts))
	for k := range arts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Println(k+":", arts[k])
	}
	return cmmn.ExitSuccess
}

func main() {
	os.Exit(mymain())
}
