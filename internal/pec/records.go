package pec

// SecVertexMassSentinel marks a jet without a reconstructed secondary vertex.
const SecVertexMassSentinel = -100.0

// EventID identifies one recorded or simulated event. It is rebuilt from the
// upstream event descriptor every event.
type EventID struct {
	RunNumber   uint64
	EventNumber uint64
	LumiSection uint64
}

// Reset returns the identity to its neutral state.
func (id *EventID) Reset() { *id = EventID{} }

// Candidate is the minimal four-momentum projection shared by all object
// records. MET-like objects are stored as bare Candidates with Eta and Mass
// forced to zero to signal "not applicable".
type Candidate struct {
	Pt   float32
	Eta  float32
	Phi  float32
	Mass float32
}

// Reset returns the candidate to its neutral state.
func (c *Candidate) Reset() { *c = Candidate{} }

// Lepton extends Candidate with the fields common to electrons and muons.
// Mass is left at zero: it is always close to the PDG value and encodes no
// useful information.
type Lepton struct {
	Candidate
	Charge int8
	DB     float32 // impact parameter w.r.t. the beam line
	RelIso float32 // pile-up-corrected relative isolation
	Bits   BitField
}

// Reset returns the lepton to its neutral state.
func (l *Lepton) Reset() { *l = Lepton{} }

// Electron is the flattened electron record. Identification scores come from
// upstream as opaque values; IDBits packs the optional cut-based working-point
// decisions in the order the decision maps were configured.
type Electron struct {
	Lepton
	MvaID      float32
	CutBasedID float32
	IDBits     BitField
}

// Reset returns the electron to its neutral state.
func (e *Electron) Reset() { *e = Electron{} }

// Muon is the flattened muon record.
type Muon struct {
	Lepton
}

// Reset returns the muon to its neutral state.
func (m *Muon) Reset() { *m = Muon{} }

// Jet is the flattened jet record. Whether Pt/Eta/Phi/Mass hold the raw or
// the calibrated momentum is a job-level choice applied to all four together.
// Flavour codes are populated in simulation only.
type Jet struct {
	Candidate
	Area          float32
	Charge        float32 // pt-weighted jet charge
	BTagCSV       float32
	BTagTCHP      float32
	SecVertexMass float32 // SecVertexMassSentinel when no secondary vertex
	PullAngle     float32
	FlavourAlgo   int32 // algorithmic definition
	FlavourPhys   int32 // physics definition, 0 when no parton is matched
	Bits          BitField
}

// Reset returns the jet to its neutral state.
func (j *Jet) Reset() { *j = Jet{} }

// GeneratorInfo carries the per-event generator-level summary. It exists only
// when processing simulation. PDF fields stay at their neutral values when the
// upstream PDF block is absent.
type GeneratorInfo struct {
	ProcessID  int64
	Weight     float32
	AltWeights []float32
	PdfX1      float32
	PdfX2      float32
	PdfID1     int32
	PdfID2     int32
	PdfQScale  float32
}

// Reset returns the record to its neutral state, keeping the AltWeights
// backing array for reuse.
func (g *GeneratorInfo) Reset() {
	alt := g.AltWeights[:0]
	*g = GeneratorInfo{}
	g.AltWeights = alt
}

// PileUpInfo carries the per-event pile-up summary. TrueNumPU and InTimePU
// are populated in simulation only.
type PileUpInfo struct {
	NumPV     int32
	Rho       float32
	TrueNumPU float32
	InTimePU  int32
}

// Reset returns the record to its neutral state.
func (p *PileUpInfo) Reset() { *p = PileUpInfo{} }

// RecordSet is the complete per-event output handed to the persistence
// collaborator: exactly one EventID and one PileUpInfo, the per-collection
// object records, and, on simulation, one GeneratorInfo.
type RecordSet struct {
	ID        EventID
	Electrons []Electron
	Muons     []Muon
	Jets      []Jet
	METs      []Candidate
	Generator *GeneratorInfo // nil on real data
	PileUp    PileUpInfo
}
