// 22 Mar 2025

// Run every YAML job under a directory through the prediction
// service. One bad job is reported and skipped. The rest carry on.

package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mjcolella/boltzpost/pkg/client"
	"github.com/mjcolella/boltzpost/pkg/cmmn"
	"github.com/mjcolella/boltzpost/pkg/payload"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags]")
	flag.PrintDefaults()
}

// findJobs collects the *.yaml files under root, sorted so batches
// run in a predictable order.
func findJobs(root string) ([]string, error) {
	var jobs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".yaml") {
			jobs = append(jobs, p)
		}
		return nil
	})
	sort.Strings(jobs)
	return jobs, err
}

// runJob sends one job and says where the results went.
func runJob(c *client.Client, yamlPath, outdir string, split bool) error {
	pl, err := payload.LoadPayloadFromYaml(yamlPath)
	if err != nil {
		return err
	}
	name := payload.MetadataName(yamlPath)
	if name == "" {
		base := filepath.Base(yamlPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	res, err := c.GenerateFromPayload(pl, outdir, name, split)
	if err != nil {
		return err
	}
	fmt.Println("finished:", yamlPath, "->", res.Dir)
	return nil
}

func mymain() int {
	inputs := flag.String("i", "inputs", "directory holding the yaml job files")
	outdir := flag.String("o", "structures", "output directory")
	nosplit := flag.Bool("nosplit", false, "do not split outputs into separate artifact files")
	apiKey := flag.String("key", "", "api key (default: BOLTZ2_API_KEY)")
	timeout := flag.Int("t", 0, "request timeout in seconds")
	flag.Usage = usage
	flag.Parse()

	if _, err := os.Stat(*inputs); err != nil {
		fmt.Fprintln(os.Stderr, "inputs directory:", err)
		return cmmn.ExitFailure
	}
	jobs, err := findJobs(*inputs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "walking", *inputs, ":", err)
		return cmmn.ExitFailure
	}
	if len(jobs) == 0 {
		fmt.Fprintln(os.Stderr, "no yaml files found under", *inputs)
		return cmmn.ExitSuccess
	}

	cfg, err := client.LoadConfig(*apiKey, "", time.Duration(*timeout)*time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cmmn.ExitFailure
	}
	c := client.NewClient(cfg)

	nfail := 0
	for _, j := range jobs {
		fmt.Println("running:", j)
		if err := runJob(c, j, *outdir, !*nosplit); err != nil {
			fmt.Fprintln(os.Stderr, "error running", j, ":", err)
			nfail++
		}
	}
	if nfail > 0 {
		fmt.Fprintln(os.Stderr, nfail, "of", len(jobs), "jobs failed")
		return cmmn.ExitFailure
	}
	return cmmn.ExitSuccess
}

func main() {
	os.Exit(mymain())
}
