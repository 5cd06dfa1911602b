// Package config loads and validates the job-level configuration. The
// configuration is read once at startup; every value is immutable afterwards.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Electron momentum estimator variants. The two observed job configurations
// disagree on which momentum an electron record stores; the choice is kept
// explicit rather than assuming one is correct.
const (
	// ElectronMomentumGsf stores the track-driven (ECAL-driven GSF) momentum
	// and uses its pt as the isolation denominator.
	ElectronMomentumGsf = "gsf"
	// ElectronMomentumStandard stores the object's general momentum.
	ElectronMomentumStandard = "standard"
)

// Config is the job configuration. Fields are pointers so that values omitted
// from the JSON file fall back to the Get* defaults; partial configs are safe.
type Config struct {
	// RunOnData indicates whether real detector data or simulation is being
	// processed. It fixes the output schema for the whole job.
	RunOnData *bool `json:"run_on_data,omitempty"`

	// Jet admission thresholds. A jet is stored when its corrected pt
	// exceeds JetMinPt or its raw pt exceeds JetMinRawPt.
	JetMinPt    *float64 `json:"jet_min_pt,omitempty"`
	JetMinRawPt *float64 `json:"jet_min_raw_pt,omitempty"`

	// UseRawJetMomentum selects which jet four-momentum is persisted. The
	// choice applies to pt, eta, phi, and mass together.
	UseRawJetMomentum *bool `json:"use_raw_jet_momentum,omitempty"`

	// ElectronMomentum names the momentum estimator variant for electrons.
	ElectronMomentum *string `json:"electron_momentum,omitempty"`

	// User-defined selection expressions, one list per object type. Each
	// result is stored as one bit in the object's packed bit field, in this
	// order, after the reserved built-in bits.
	EleSelection []string `json:"ele_selection,omitempty"`
	MuSelection  []string `json:"mu_selection,omitempty"`
	JetSelection []string `json:"jet_selection,omitempty"`

	// METSources names the upstream MET collections to read, in output
	// order. At least one source is required.
	METSources []string `json:"met_sources"`

	// ElectronIDMaps names the optional cut-based identification decision
	// maps, in the order their bits are packed.
	ElectronIDMaps []string `json:"electron_id_maps,omitempty"`

	// Upstream collection references.
	VertexCollection    *string `json:"vertex_collection,omitempty"`
	RhoCollection       *string `json:"rho_collection,omitempty"`
	PileUpCollection    *string `json:"pileup_collection,omitempty"`
	GeneratorCollection *string `json:"generator_collection,omitempty"`

	// ProgressInterval is how often (in events) the pipeline logs progress.
	ProgressInterval *int64 `json:"progress_interval,omitempty"`
}

// Load reads and validates a Config from a JSON file.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks structural constraints. Selection expressions are compiled
// (and rejected) later, when the builders are constructed; both failures
// surface before any event is processed.
func (c *Config) Validate() error {
	if c.JetMinPt != nil && *c.JetMinPt < 0 {
		return fmt.Errorf("jet_min_pt must be non-negative, got %f", *c.JetMinPt)
	}
	if c.JetMinRawPt != nil && *c.JetMinRawPt < 0 {
		return fmt.Errorf("jet_min_raw_pt must be non-negative, got %f", *c.JetMinRawPt)
	}

	if c.ElectronMomentum != nil {
		switch *c.ElectronMomentum {
		case ElectronMomentumGsf, ElectronMomentumStandard:
		default:
			return fmt.Errorf("electron_momentum must be %q or %q, got %q",
				ElectronMomentumGsf, ElectronMomentumStandard, *c.ElectronMomentum)
		}
	}

	if len(c.METSources) == 0 {
		return fmt.Errorf("met_sources must name at least one MET collection")
	}
	seen := make(map[string]struct{}, len(c.METSources))
	for _, src := range c.METSources {
		if src == "" {
			return fmt.Errorf("met_sources contains an empty collection reference")
		}
		if _, dup := seen[src]; dup {
			return fmt.Errorf("met_sources names %q twice", src)
		}
		seen[src] = struct{}{}
	}

	for _, name := range c.ElectronIDMaps {
		if name == "" {
			return fmt.Errorf("electron_id_maps contains an empty map reference")
		}
	}

	for _, ref := range []struct {
		name  string
		value *string
	}{
		{"vertex_collection", c.VertexCollection},
		{"rho_collection", c.RhoCollection},
		{"pileup_collection", c.PileUpCollection},
		{"generator_collection", c.GeneratorCollection},
	} {
		if ref.value != nil && *ref.value == "" {
			return fmt.Errorf("%s must not be empty when set", ref.name)
		}
	}

	return nil
}

// GetRunOnData returns the run_on_data value or the default.
func (c *Config) GetRunOnData() bool {
	if c.RunOnData == nil {
		return false
	}
	return *c.RunOnData
}

// GetJetMinPt returns the jet_min_pt value or the default.
func (c *Config) GetJetMinPt() float64 {
	if c.JetMinPt == nil {
		return 20.0
	}
	return *c.JetMinPt
}

// GetJetMinRawPt returns the jet_min_raw_pt value or the default.
func (c *Config) GetJetMinRawPt() float64 {
	if c.JetMinRawPt == nil {
		return 10.0
	}
	return *c.JetMinRawPt
}

// GetUseRawJetMomentum returns the use_raw_jet_momentum value or the default.
func (c *Config) GetUseRawJetMomentum() bool {
	if c.UseRawJetMomentum == nil {
		return true
	}
	return *c.UseRawJetMomentum
}

// GetElectronMomentum returns the electron_momentum value or the default.
func (c *Config) GetElectronMomentum() string {
	if c.ElectronMomentum == nil {
		return ElectronMomentumGsf
	}
	return *c.ElectronMomentum
}

// GetVertexCollection returns the vertex_collection value or the default.
func (c *Config) GetVertexCollection() string {
	if c.VertexCollection == nil {
		return "offlineSlimmedPrimaryVertices"
	}
	return *c.VertexCollection
}

// GetRhoCollection returns the rho_collection value or the default.
func (c *Config) GetRhoCollection() string {
	if c.RhoCollection == nil {
		return "fixedGridRhoFastjetAll"
	}
	return *c.RhoCollection
}

// GetPileUpCollection returns the pileup_collection value or the default.
func (c *Config) GetPileUpCollection() string {
	if c.PileUpCollection == nil {
		return "addPileupInfo"
	}
	return *c.PileUpCollection
}

// GetGeneratorCollection returns the generator_collection value or the default.
func (c *Config) GetGeneratorCollection() string {
	if c.GeneratorCollection == nil {
		return "generator"
	}
	return *c.GeneratorCollection
}

// GetProgressInterval returns the progress_interval value or the default.
func (c *Config) GetProgressInterval() int64 {
	if c.ProgressInterval == nil {
		return 1000
	}
	return *c.ProgressInterval
}
