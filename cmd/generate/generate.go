// 21 Mar 2025

// Send one prediction job, described by a YAML file, to the Boltz-2
// service and save what comes back.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/mjcolella/boltzpost/pkg/client"
	"github.com/mjcolella/boltzpost/pkg/cmmn"
	"github.com/mjcolella/boltzpost/pkg/payload"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] job.yaml")
	flag.PrintDefaults()
}

// runName decides what the run directory and files will be called.
// Flag beats meta.name from the job file beats the file name.
func runName(nameFlag, yamlPath string) string {
	if nameFlag != "" {
		return nameFlag
	}
	if n := payload.MetadataName(yamlPath); n != "" {
		return n
	}
	base := filepath.Base(yamlPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func mymain() int {
	outdir := flag.String("o", "structures", "output directory")
	name := flag.String("n", "", "name for the run (default: meta.name or the file name)")
	nosplit := flag.Bool("nosplit", false, "do not split outputs into separate artifact files")
	apiKey := flag.String("key", "", "api key (default: BOLTZ2_API_KEY)")
	timeout := flag.Int("t", 0, "request timeout in seconds")
	verbose := flag.Bool("v", false, "chatty output")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return cmmn.ExitUsageError
	}
	yamlPath := flag.Arg(0)
	if _, err := os.Stat(yamlPath); err != nil {
		fmt.Fprintln(os.Stderr, "input file:", err)
		return cmmn.ExitFailure
	}

	cfg, err := client.LoadConfig(*apiKey, "", time.Duration(*timeout)*time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cmmn.ExitFailure
	}
	c := client.NewClient(cfg)
	if *verbose {
		if c.Log, err = cmmn.LogWhere("stdout"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return cmmn.ExitFailure
		}
	}

	pl, err := payload.LoadPayloadFromYaml(yamlPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading job:", err)
		return cmmn.ExitFailure
	}

	res, err := c.GenerateFromPayload(pl, *outdir, runName(*name, yamlPath), !*nosplit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generation failed:", err)
		return cmmn.ExitFailure
	}

	fmt.Println("output directory:", res.Dir)
	for _, p := range res.Mmcifs {
		fmt.Println("  structure:", p)
	}
	fmt.Println("  response:", res.JSON)
	for k, v := range res.Artifacts {
		fmt.Println("  "+k+":", v)
	}
	return cmmn.ExitSuccess
}

func main() {
	os.Exit(mymain())
}
