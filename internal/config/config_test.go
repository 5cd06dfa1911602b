package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"met_sources": ["slimmedMETs"]}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.GetRunOnData() {
		t.Error("default run_on_data = true, want false")
	}
	if cfg.GetJetMinPt() != 20.0 {
		t.Errorf("default jet_min_pt = %v, want 20", cfg.GetJetMinPt())
	}
	if cfg.GetJetMinRawPt() != 10.0 {
		t.Errorf("default jet_min_raw_pt = %v, want 10", cfg.GetJetMinRawPt())
	}
	if !cfg.GetUseRawJetMomentum() {
		t.Error("default use_raw_jet_momentum = false, want true")
	}
	if cfg.GetElectronMomentum() != ElectronMomentumGsf {
		t.Errorf("default electron_momentum = %q, want gsf", cfg.GetElectronMomentum())
	}
	if cfg.GetVertexCollection() == "" || cfg.GetRhoCollection() == "" ||
		cfg.GetPileUpCollection() == "" || cfg.GetGeneratorCollection() == "" {
		t.Error("default collection references must not be empty")
	}
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
		"run_on_data": true,
		"jet_min_pt": 25,
		"jet_min_raw_pt": 12,
		"use_raw_jet_momentum": false,
		"electron_momentum": "standard",
		"ele_selection": ["pt > 20 && abs(eta) < 2.5"],
		"mu_selection": ["is_tight"],
		"jet_selection": ["abs(eta) <= 3"],
		"met_sources": ["slimmedMETs", "slimmedMETsNoHF"],
		"electron_id_maps": ["cutBasedVeto", "cutBasedTight"],
		"vertex_collection": "goodOfflinePrimaryVertices"
	}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.GetRunOnData() || cfg.GetJetMinPt() != 25 || cfg.GetUseRawJetMomentum() {
		t.Errorf("loaded values wrong: %+v", cfg)
	}
	if cfg.GetElectronMomentum() != ElectronMomentumStandard {
		t.Errorf("electron_momentum = %q", cfg.GetElectronMomentum())
	}
	if len(cfg.METSources) != 2 || len(cfg.ElectronIDMaps) != 2 {
		t.Errorf("list fields wrong: %+v", cfg)
	}
	if cfg.GetVertexCollection() != "goodOfflinePrimaryVertices" {
		t.Errorf("vertex_collection = %q", cfg.GetVertexCollection())
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "example.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GetRunOnData() {
		t.Error("example config must describe a simulation job")
	}
	if len(cfg.METSources) == 0 || len(cfg.ElectronIDMaps) != 4 {
		t.Errorf("example config lists wrong: %+v", cfg)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	if _, err := Load("nope.yaml"); err == nil {
		t.Error("non-JSON extension accepted")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := Load(writeConfig(t, `{not json`)); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{"negative jet_min_pt", `{"met_sources": ["m"], "jet_min_pt": -1}`},
		{"negative jet_min_raw_pt", `{"met_sources": ["m"], "jet_min_raw_pt": -0.5}`},
		{"bad electron_momentum", `{"met_sources": ["m"], "electron_momentum": "tracker"}`},
		{"no met sources", `{}`},
		{"empty met source", `{"met_sources": [""]}`},
		{"duplicate met source", `{"met_sources": ["m", "m"]}`},
		{"empty id map", `{"met_sources": ["m"], "electron_id_maps": [""]}`},
		{"empty vertex ref", `{"met_sources": ["m"], "vertex_collection": ""}`},
	}
	for _, c := range cases {
		if _, err := Load(writeConfig(t, c.contents)); err == nil {
			t.Errorf("%s: accepted", c.name)
		}
	}
}
