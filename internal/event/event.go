// Package event defines the input side of the synthesis pipeline: the
// per-event object collections supplied by the upstream reconstruction
// collaborator. Every field is an opaque upstream-computed attribute; no
// reconstruction happens in this repository.
package event

// ID is the upstream event descriptor.
type ID struct {
	Run         uint64 `json:"run"`
	Event       uint64 `json:"event"`
	LumiSection uint64 `json:"lumi"`
}

// Vertex is one reconstructed primary vertex. Only its presence matters to
// the pipeline; the coordinates are carried for completeness.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// P4 is a four-momentum in (pt, eta, phi, mass) form.
type P4 struct {
	Pt   float64 `json:"pt"`
	Eta  float64 `json:"eta"`
	Phi  float64 `json:"phi"`
	Mass float64 `json:"mass"`
}

// Electron is one reconstructed electron. It carries two momentum estimates:
// the general object momentum and the track-driven (ECAL-driven GSF) one.
// Which estimate the output uses is a schema-variant choice.
type Electron struct {
	Pt     float64 `json:"pt"`
	Eta    float64 `json:"eta"`
	Phi    float64 `json:"phi"`
	GsfPt  float64 `json:"gsf_pt"`
	GsfEta float64 `json:"gsf_eta"`
	GsfPhi float64 `json:"gsf_phi"`
	Charge int     `json:"charge"`
	DB     float64 `json:"db"`

	ChargedHadronIso float64 `json:"charged_hadron_iso"`
	NeutralHadronIso float64 `json:"neutral_hadron_iso"`
	PhotonIso        float64 `json:"photon_iso"`
	// EffectiveAreaPU is the rho-scaled effective-area term used as the
	// pile-up component of the isolation correction.
	EffectiveAreaPU float64 `json:"effective_area_pu"`

	MvaID              float64 `json:"mva_id"`
	CutBasedID         float64 `json:"cut_based_id"`
	PassConversionVeto bool    `json:"pass_conversion_veto"`

	// IDDecisions holds the optional cut-based working-point decisions,
	// keyed by the configured decision-map names. May be nil.
	IDDecisions map[string]bool `json:"id_decisions,omitempty"`
}

// Muon is one reconstructed muon.
type Muon struct {
	Pt     float64 `json:"pt"`
	Eta    float64 `json:"eta"`
	Phi    float64 `json:"phi"`
	Charge int     `json:"charge"`
	DB     float64 `json:"db"`

	ChargedHadronIso   float64 `json:"charged_hadron_iso"`
	NeutralHadronIso   float64 `json:"neutral_hadron_iso"`
	PhotonIso          float64 `json:"photon_iso"`
	PUChargedHadronIso float64 `json:"pu_charged_hadron_iso"`

	// IsTight is the upstream tight-identification decision, evaluated
	// against the leading primary vertex.
	IsTight bool `json:"is_tight"`
}

// Constituent is one jet constituent, already projected into the
// (pt, rapidity, azimuth) form the pull-angle computation consumes.
type Constituent struct {
	Pt       float64 `json:"pt"`
	Rapidity float64 `json:"rapidity"`
	Phi      float64 `json:"phi"`
}

// GenParton is the generator-level parton matched to a jet (simulation only).
type GenParton struct {
	PdgID int32 `json:"pdg_id"`
}

// GenJet is the generator-level jet matched to a reconstructed jet
// (simulation only).
type GenJet struct {
	Pt  float64 `json:"pt"`
	Eta float64 `json:"eta"`
	Phi float64 `json:"phi"`
}

// Jet is one reconstructed jet with both calibrated and raw four-momenta.
// Discriminants and tag attributes are computed upstream. Generator-level
// matches are present in simulation only and may be absent per jet.
type Jet struct {
	Corrected P4 `json:"corrected"`
	Raw       P4 `json:"raw"`

	Area   float64 `json:"area"`
	Charge float64 `json:"charge"`

	BTagCSV  float64 `json:"btag_csv"`
	BTagTCHP float64 `json:"btag_tchp"`

	HasSecondaryVertex  bool    `json:"has_secondary_vertex"`
	SecondaryVertexMass float64 `json:"secondary_vertex_mass"`

	Constituents []Constituent `json:"constituents"`

	PartonFlavour int32      `json:"parton_flavour"`
	GenParton     *GenParton `json:"gen_parton,omitempty"`
	GenJet        *GenJet    `json:"gen_jet,omitempty"`
}

// METVariation enumerates the systematic variations synthesised for MET-like
// candidates when processing simulation. The order here is the order the
// extra records appear in the output.
type METVariation int

const (
	JetEnUp METVariation = iota
	JetEnDown
	JetResUp
	JetResDown
	UnclusteredEnUp
	UnclusteredEnDown
	numMETVariations
)

// METVariations lists every variation kind in output order.
func METVariations() []METVariation {
	out := make([]METVariation, numMETVariations)
	for i := range out {
		out[i] = METVariation(i)
	}
	return out
}

// String returns the variation name used in configuration and storage.
func (v METVariation) String() string {
	switch v {
	case JetEnUp:
		return "JetEnUp"
	case JetEnDown:
		return "JetEnDown"
	case JetResUp:
		return "JetResUp"
	case JetResDown:
		return "JetResDown"
	case UnclusteredEnUp:
		return "UnclusteredEnUp"
	case UnclusteredEnDown:
		return "UnclusteredEnDown"
	}
	return "Unknown"
}

// PtPhi is the transverse projection of a MET-like candidate.
type PtPhi struct {
	Pt  float64 `json:"pt"`
	Phi float64 `json:"phi"`
}

// MET is one missing-transverse-energy source: the nominal candidate plus the
// optional raw value and shifted systematic variations.
type MET struct {
	Pt  float64 `json:"pt"`
	Phi float64 `json:"phi"`

	Raw *PtPhi `json:"raw,omitempty"`

	// Shifts maps variation names (METVariation.String) to shifted
	// candidates. Absent entries are skipped silently.
	Shifts map[string]PtPhi `json:"shifts,omitempty"`
}

// PDFInfo is the optional per-event PDF block.
type PDFInfo struct {
	X1     float64 `json:"x1"`
	X2     float64 `json:"x2"`
	ID1    int32   `json:"id1"`
	ID2    int32   `json:"id2"`
	QScale float64 `json:"q_scale"`
}

// GeneratorInfo is the per-event generator summary (simulation only).
type GeneratorInfo struct {
	ProcessID  int64     `json:"process_id"`
	Weight     float64   `json:"weight"`
	AltWeights []float64 `json:"alt_weights,omitempty"`
	PDF        *PDFInfo  `json:"pdf,omitempty"`
}

// BunchCrossing is the pile-up interaction count for one bunch crossing.
type BunchCrossing struct {
	BX              int `json:"bx"`
	NumInteractions int `json:"num_interactions"`
}

// PileUpSummary is the simulation-only pile-up truth record.
type PileUpSummary struct {
	TrueNumInteractions float64         `json:"true_num_interactions"`
	ByBunchCrossing     []BunchCrossing `json:"by_bunch_crossing"`
}

// Event is one fully resolved input event: the descriptor plus every
// collection the pipeline reads. Generator and PileUp are nil on real data
// (the source never resolves them there) and may be nil on simulation when
// the upstream record is absent.
type Event struct {
	ID        ID
	Vertices  []Vertex
	Electrons []Electron
	Muons     []Muon
	Jets      []Jet
	// METs holds one entry per configured MET source, in configured order.
	METs      []MET
	Rho       float64
	Generator *GeneratorInfo
	PileUp    *PileUpSummary
}
