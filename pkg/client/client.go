// 20 Mar 2025

// Package client talks to the Boltz-2 prediction service. Predict
// does one POST and hands back the decoded response. The Generate
// functions also put the results on disk the way the rest of the
// tools expect: a run directory holding the raw JSON response and one
// mmcif file per diffusion sample.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/mjcolella/boltzpost/pkg/payload"
	"github.com/mjcolella/boltzpost/pkg/report"
	"github.com/mjcolella/boltzpost/pkg/runio"
)

// Error messages quote the server's response body, but some services
// send pages of it. This is as much as anyone wants in a log line.
const maxBodyInErr = 300

type Client struct {
	cfg *Config
	hc  *http.Client
	Log *log.Logger // nil means quiet
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) logf(format string, args ...any) {
	if c.Log != nil {
		c.Log.Printf(format, args...)
	}
}

// firstPart keeps error messages from exploding when a server sends
// a whole html page as its error body.
func firstPart(s string) string {
	if len(s) > maxBodyInErr {
		return s[:maxBodyInErr] + "..."
	}
	return s
}

// Predict sends one prediction request and returns the decoded
// response. Anything but a 2xx status is an error carrying the
// status and the start of the body.
func (c *Client) Predict(payload map[string]any) (map[string]any, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logf("sending predict request to %s", c.cfg.BaseURL)
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("prediction request failed: %s %s",
			resp.Status, firstPart(string(body)))
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}

// A Result says where one prediction run ended up on disk.
type Result struct {
	Dir       string            // the run directory
	Name      string            // run name used in file names
	JSON      string            // raw response
	Mmcifs    []string          // one structure file per sample
	Artifacts map[string]string // only when splitting was asked for.
	// With several samples the keys get a sample_N_ prefix.
	Response map[string]any
}

// GenerateFromPayload runs one prediction and saves everything under
// outDir. outputName names the run; "" means a timestamped name with
// the given prefix. With split set, each structure also gets broken
// into separate artifact files.
func (c *Client) GenerateFromPayload(payload map[string]any, outDir, outputName string,
	split bool) (*Result, error) {
	dir, name, err := runio.CreateRunDir(outDir, outputName, "boltz2")
	if err != nil {
		return nil, err
	}

	resp, err := c.Predict(payload)
	if err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(dir, name+".json")
	if err := runio.SaveJSON(resp, jsonPath); err != nil {
		return nil, err
	}

	texts := report.ExtractMmcifs(resp)
	var mmcifPaths []string
	switch len(texts) {
	case 0: // keep the file layout predictable even with nothing in it
		p := filepath.Join(dir, name+".mmcif")
		if err := runio.SaveText("", p); err != nil {
			return nil, err
		}
		mmcifPaths = append(mmcifPaths, p)
	case 1:
		p := filepath.Join(dir, name+".mmcif")
		if err := runio.SaveText(texts[0], p); err != nil {
			return nil, err
		}
		mmcifPaths = append(mmcifPaths, p)
	default: // one file per diffusion sample
		for i, text := range texts {
			p := filepath.Join(dir, fmt.Sprintf("%s_%d.mmcif", name, i+1))
			if err := runio.SaveText(text, p); err != nil {
				return nil, err
			}
			mmcifPaths = append(mmcifPaths, p)
		}
	}
	c.logf("saved outputs: dir %s, %d mmcif files", dir, len(mmcifPaths))

	res := &Result{
		Dir:      dir,
		Name:     name,
		JSON:     jsonPath,
		Mmcifs:   mmcifPaths,
		Response: resp,
	}

	if split && len(texts) > 0 {
		res.Artifacts = make(map[string]string)
		for i, p := range mmcifPaths {
			arts, err := report.SplitStructureFile(p)
			if err != nil {
				return nil, err
			}
			for k, v := range arts {
				if len(mmcifPaths) > 1 {
					k = fmt.Sprintf("sample_%d_%s", i+1, k)
				}
				res.Artifacts[k] = v
			}
		}
	}
	return res, nil
}

// GenerateProteinLigand is the convenience wrapper for the common
// case, a single protein against a single ligand given as SMILES.
func (c *Client) GenerateProteinLigand(sequence, ligandSmiles, outDir, outputName string,
	overrides map[string]any, split bool) (*Result, error) {
	pl := payload.BuildPayload(sequence, ligandSmiles, "", false, overrides)
	if outputName == "" {
		outputName = "boltz2_protein_ligand_" + runio.Timestamp()
	}
	return c.GenerateFromPayload(pl, outDir, outputName, split)
}

// GenerateProtein is the protein-only version of the wrapper above.
func (c *Client) GenerateProtein(sequence, outDir, outputName string,
	overrides map[string]any, split bool) (*Result, error) {
	pl := payload.BuildProteinOnlyPayload(sequence, false, overrides)
	if outputName == "" {
		outputName = "boltz2_protein_" + runio.Timestamp()
	}
	return c.GenerateFromPayload(pl, outDir, outputName, split)
}
