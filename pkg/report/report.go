// 18 Mar 2025

// Package report digs the useful pieces out of a Boltz-2 prediction
// response: the mmcif structures themselves, the confidence scores,
// affinities and pairwise chain matrices. It also splits a saved
// output file into separate artifacts and can summarise or plot the
// per-residue confidence profile.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// confidenceKeys are the score fields the service is known to
// return. Anything absent from a response is simply left out.
var confidenceKeys = []string{
	"confidence_scores",
	"ptm_scores",
	"iptm_scores",
	"complex_plddt_scores",
	"complex_iplddt_scores",
	"ma_qa_metric_local",
	"ma_qa_metric",
}

var matrixKeys = []string{"pair_chains_iptm_scores", "complex_iplddt_scores"}

// ExtractMmcifs pulls every mmcif structure out of a response. The
// response holds them under structures[].structure, one per diffusion
// sample. A response with none gives an empty slice.
func ExtractMmcifs(resp map[string]any) []string {
	var out []string
	structures, ok := resp["structures"].([]any)
	if !ok {
		return out
	}
	for _, s := range structures {
		m, ok := s.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := m["structure"].(string); ok && text != "" {
			out = append(out, text)
		}
	}
	return out
}

// ExtractMmcifsText is ExtractMmcifs for raw file contents. Text that
// parses as a JSON object is treated as a response. Anything else is
// assumed to already be mmcif and comes back as a one element slice.
func ExtractMmcifsText(text string) []string {
	if strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "{") {
		var resp map[string]any
		if err := json.Unmarshal([]byte(text), &resp); err == nil {
			return ExtractMmcifs(resp)
		}
	}
	return []string{text}
}

// pick copies the named keys that are present and non-nil.
func pick(resp map[string]any, keys []string) map[string]any {
	out := make(map[string]any)
	for _, k := range keys {
		if v, ok := resp[k]; ok && v != nil {
			out[k] = v
		}
	}
	return out
}

// ExtractConfidence returns the confidence related metrics from a
// response: pTM, ipTM, pLDDT and the local QA scores.
func ExtractConfidence(resp map[string]any) map[string]any {
	return pick(resp, confidenceKeys)
}

// ExtractAffinity returns the affinity predictions, or nil when the
// job had no ligand to predict against.
func ExtractAffinity(resp map[string]any) any {
	return resp["affinities"]
}

// ExtractMatrices returns the pairwise (chain by chain) score
// matrices from a response.
func ExtractMatrices(resp map[string]any) map[string]any {
	return pick(resp, matrixKeys)
}

// sidecarJSON looks for a response saved next to a structure file
// under the same name with a .json extension.
func sidecarJSON(inpath string) map[string]any {
	ext := filepath.Ext(inpath)
	jpath := strings.TrimSuffix(inpath, ext) + ".json"
	if jpath == inpath {
		return nil
	}
	b, err := os.ReadFile(jpath)
	if err != nil {
		return nil
	}
	var resp map[string]any
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil
	}
	return resp
}

// findMmcif locates mmcif content in raw text that might be a bare
// structure, a structure glued after other output, or nothing at all.
func findMmcif(text string) (string, bool) {
	if strings.Contains(text, "data_") || strings.Contains(text, "loop_") {
		return text, true
	}
	ndx := strings.Index(text, "data_")
	if ndx == -1 {
		ndx = strings.Index(text, "_entry.id")
	}
	if ndx == -1 {
		return "", false
	}
	return text[ndx:], true
}

// writeJSONArtifact writes one extracted piece as indented JSON and
// records it under key. Empty pieces write nothing.
func writeJSONArtifact(generated map[string]string, key, path string, v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		if len(t) == 0 {
			return nil
		}
	case []any:
		if len(t) == 0 {
			return nil
		}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return err
	}
	generated[key] = path
	return nil
}

// SplitStructureFile breaks one saved prediction output into separate
// artifacts next to the input: the full mmcif, a protein-only mmcif
// with the HETATM lines dropped, and JSON files for confidence,
// affinity and matrix data when the response is available (either
// because the input is itself JSON or because a sidecar .json file
// sits next to it). The returned map goes from artifact name to path.
// The only hard failure is input with no mmcif content at all.
func SplitStructureFile(inpath string) (map[string]string, error) {
	ext := filepath.Ext(inpath)
	base := strings.TrimSuffix(filepath.Base(inpath), ext)
	dir := filepath.Dir(inpath)

	b, err := os.ReadFile(inpath)
	if err != nil {
		return nil, err
	}
	text := string(b)

	resp := sidecarJSON(inpath)
	if resp == nil && strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "{") {
		var m map[string]any
		if err := json.Unmarshal(b, &m); err == nil {
			resp = m
		}
	}

	var mmcifText string
	if resp != nil {
		if ms := ExtractMmcifs(resp); len(ms) > 0 {
			mmcifText = ms[0]
		}
	}
	if mmcifText == "" {
		found, ok := findMmcif(text)
		if !ok {
			return nil, fmt.Errorf("no mmcif content found in %s", inpath)
		}
		mmcifText = found
	}

	generated := make(map[string]string)

	mmcifOut := filepath.Join(dir, base+".mmcif")
	if err := os.WriteFile(mmcifOut, []byte(mmcifText), 0644); err != nil {
		return nil, err
	}
	generated["mmcif"] = mmcifOut

	var protein []string
	for _, ln := range strings.Split(mmcifText, "\n") {
		if !strings.HasPrefix(ln, "HETATM") {
			protein = append(protein, ln)
		}
	}
	proteinOut := filepath.Join(dir, base+"_protein.mmcif")
	if err := os.WriteFile(proteinOut, []byte(strings.Join(protein, "\n")), 0644); err != nil {
		return nil, err
	}
	generated["protein_mmcif"] = proteinOut

	if resp != nil {
		conf := ExtractConfidence(resp)
		if err := writeJSONArtifact(generated, "confidence_json",
			filepath.Join(dir, base+"_confidence.json"), conf); err != nil {
			return nil, err
		}
		if err := writeJSONArtifact(generated, "affinity_json",
			filepath.Join(dir, base+"_affinity.json"), ExtractAffinity(resp)); err != nil {
			return nil, err
		}
		if err := writeJSONArtifact(generated, "matrices_json",
			filepath.Join(dir, base+"_matrices.json"), ExtractMatrices(resp)); err != nil {
			return nil, err
		}
	}
	return generated, nil
}

// Floats coerces a decoded JSON list into float64s, quietly dropping
// anything that is not a number. JSON numbers always decode as
// float64, so in practice nothing gets dropped.
func Floats(v any) []float64 {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(list))
	for _, e := range list {
		if f, ok := e.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}
