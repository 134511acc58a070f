// 17 Mar 2025

// Package payload builds request bodies for the Boltz-2 prediction
// service. Jobs are usually described in the Boltz-2 YAML input
// format, a "sequences" list of protein, rna, dna and ligand entries
// plus optional prediction parameters. The payload itself is a plain
// map so callers can override or add any key the service understands.
package payload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type protSpec struct {
	ID       string `yaml:"id"`
	Sequence string `yaml:"sequence"`
	Cyclic   bool   `yaml:"cyclic"`
}

type naSpec struct {
	ID       string `yaml:"id"`
	Sequence string `yaml:"sequence"`
}

type ligSpec struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Smiles string `yaml:"smiles"`
	CCD    string `yaml:"ccd"`
}

// A seqItem is one entry in the "sequences" list. Exactly one of the
// members should be set, but we do not insist. The first one set
// wins, in the order below.
type seqItem struct {
	Protein *protSpec `yaml:"protein"`
	Rna     *naSpec   `yaml:"rna"`
	Dna     *naSpec   `yaml:"dna"`
	Ligand  *ligSpec  `yaml:"ligand"`
}

// jobConfig is the YAML job file. Top level keys that are not
// sequences or meta are prediction parameters and land in Params.
type jobConfig struct {
	Meta struct {
		Name string `yaml:"name"`
	} `yaml:"meta"`
	Sequences []seqItem      `yaml:"sequences"`
	Params    map[string]any `yaml:",inline"`
}

// paramDflts are the prediction parameters the service accepts and
// the values we send when the job file stays quiet about them.
var paramDflts = []struct {
	name string
	val  any
}{
	{"recycling_steps", 3},
	{"sampling_steps", 50},
	{"diffusion_samples", 1},
	{"step_scale", 1.638},
	{"without_potentials", false},
	{"output_format", "mmcif"},
	{"concatenate_msas", false},
	{"sampling_steps_affinity", 200},
	{"diffusion_samples_affinity", 5},
	{"affinity_mw_correction", false},
}

// applyDflts fills in every known parameter, preferring a value from
// src when it has one.
func applyDflts(pl map[string]any, src map[string]any) {
	for _, p := range paramDflts {
		if v, ok := src[p.name]; ok {
			pl[p.name] = v
		} else {
			pl[p.name] = p.val
		}
	}
}

// buildFromConfig turns a decoded job file into a payload with
// "polymers" and "ligands" lists plus the prediction parameters.
func buildFromConfig(cfg *jobConfig) map[string]any {
	var polymers []map[string]any
	var ligands []map[string]any

	for _, it := range cfg.Sequences {
		switch {
		case it.Protein != nil:
			polymers = append(polymers, map[string]any{
				"molecule_type": "protein",
				"sequence":      it.Protein.Sequence,
				"cyclic":        it.Protein.Cyclic,
			})
		case it.Rna != nil:
			polymers = append(polymers, map[string]any{
				"molecule_type": "rna",
				"sequence":      it.Rna.Sequence,
			})
		case it.Dna != nil:
			polymers = append(polymers, map[string]any{
				"molecule_type": "dna",
				"sequence":      it.Dna.Sequence,
			})
		case it.Ligand != nil:
			name := it.Ligand.ID
			if name == "" {
				name = it.Ligand.Name
			}
			if name == "" {
				name = "ligand"
			}
			lig := map[string]any{"name": name}
			if it.Ligand.Smiles != "" {
				lig["smiles"] = it.Ligand.Smiles
			} else if it.Ligand.CCD != "" {
				lig["ccd"] = it.Ligand.CCD
			}
			ligands = append(ligands, lig)
		}
	}

	pl := make(map[string]any)
	if len(polymers) > 0 {
		pl["polymers"] = polymers
	}
	if len(ligands) > 0 {
		pl["ligands"] = ligands
	}
	applyDflts(pl, cfg.Params)
	return pl
}

// LoadPayloadFromYaml reads a Boltz-2 YAML job file and returns the
// payload to send. An empty file or one whose root is not a mapping
// is an error.
func LoadPayloadFromYaml(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg jobConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("yaml file %s: %w", path, err)
	}
	if len(cfg.Sequences) == 0 && len(cfg.Params) == 0 {
		return nil, fmt.Errorf("yaml file is empty or has no usable content: %s", path)
	}
	return buildFromConfig(&cfg), nil
}

// MetadataName returns the meta.name field from a job file, or "".
// Any trouble reading or decoding just means no name. Callers fall
// back to the file name.
func MetadataName(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var cfg jobConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return ""
	}
	return cfg.Meta.Name
}

// BuildPayload makes a protein plus ligand payload from bare
// sequences, with every parameter at its default. Anything in
// overrides is copied on top afterwards and may introduce new keys.
func BuildPayload(sequence, ligandSmiles, ligandName string, cyclic bool,
	overrides map[string]any) map[string]any {
	if ligandName == "" {
		ligandName = "ligand"
	}
	pl := map[string]any{
		"polymers": []map[string]any{{
			"molecule_type": "protein",
			"sequence":      sequence,
			"cyclic":        cyclic,
		}},
		"ligands": []map[string]any{{
			"name":   ligandName,
			"smiles": ligandSmiles,
		}},
	}
	applyDflts(pl, nil)
	for k, v := range overrides {
		pl[k] = v
	}
	return pl
}

// BuildProteinOnlyPayload is BuildPayload without a ligand. The
// affinity parameters make no sense without one and are left out.
func BuildProteinOnlyPayload(sequence string, cyclic bool,
	overrides map[string]any) map[string]any {
	pl := map[string]any{
		"polymers": []map[string]any{{
			"molecule_type": "protein",
			"sequence":      sequence,
			"cyclic":        cyclic,
		}},
	}
	applyDflts(pl, nil)
	delete(pl, "sampling_steps_affinity")
	delete(pl, "diffusion_samples_affinity")
	delete(pl, "affinity_mw_correction")
	for k, v := range overrides {
		pl[k] = v
	}
	return pl
}
