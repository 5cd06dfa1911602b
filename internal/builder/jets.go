package builder

import (
	"fmt"

	"github.com/banshee-data/pectuple/internal/event"
	"github.com/banshee-data/pectuple/internal/kinematics"
	"github.com/banshee-data/pectuple/internal/pec"
	"github.com/banshee-data/pectuple/internal/selector"
)

// Generator-match working points for the reserved jet bit: a matched
// generator-level jet must pass this pt threshold and lie within this angular
// distance of the reconstructed jet.
const (
	genMatchMinPt = 8.0
	genMatchMaxDR = 0.25
)

// JetBuilder flattens the jet collection. Jets below both admission
// thresholds are dropped; everything else is stored with either the raw or
// the calibrated four-momentum, chosen once per job.
type JetBuilder struct {
	schema   Schema
	minPt    float64
	minRawPt float64
	useRaw   bool
	preds    []selector.Predicate

	scratch      pec.Jet
	out          []pec.Jet
	constituents []kinematics.Constituent
}

// NewJetBuilder compiles the configured jet selections and fixes the
// admission thresholds and momentum choice.
func NewJetBuilder(schema Schema, minPt, minRawPt float64, useRaw bool, selections []string) (*JetBuilder, error) {
	preds, err := selector.CompileList(selections, JetAttributes())
	if err != nil {
		return nil, fmt.Errorf("jet selections: %w", err)
	}
	if err := checkBitBudget("jet", schema.JetReservedBits(), len(preds)); err != nil {
		return nil, err
	}
	return &JetBuilder{
		schema:   schema,
		minPt:    minPt,
		minRawPt: minRawPt,
		useRaw:   useRaw,
		preds:    preds,
	}, nil
}

// Build emits one record per admitted input jet, preserving input order. The
// returned slice is owned by the builder and valid until the next Build.
func (b *JetBuilder) Build(jets []event.Jet) []pec.Jet {
	b.out = b.out[:0]
	for i := range jets {
		j := &jets[i]

		// Admission is an OR of two independent thresholds: a jet passes on
		// its calibrated pt or on its raw pt.
		if !(j.Corrected.Pt > b.minPt || j.Raw.Pt > b.minRawPt) {
			continue
		}

		rec := &b.scratch
		rec.Reset()

		p4 := j.Corrected
		if b.useRaw {
			p4 = j.Raw
		}
		rec.Pt = float32(p4.Pt)
		rec.Eta = float32(p4.Eta)
		rec.Phi = float32(p4.Phi)
		rec.Mass = float32(p4.Mass)

		rec.Area = float32(j.Area)
		rec.Charge = float32(j.Charge)
		rec.BTagCSV = float32(j.BTagCSV)
		rec.BTagTCHP = float32(j.BTagTCHP)

		secVtxMass := pec.SecVertexMassSentinel
		if j.HasSecondaryVertex {
			secVtxMass = j.SecondaryVertexMass
		}
		rec.SecVertexMass = float32(secVtxMass)

		pull := b.pullAngle(j)
		rec.PullAngle = float32(pull)

		genMatch := false
		if b.schema.IncludeGenerator() {
			rec.FlavourAlgo = j.PartonFlavour
			if j.GenParton != nil {
				rec.FlavourPhys = j.GenParton.PdgID
			}
			genMatch = jetGenMatch(j)
		}

		offset := b.schema.JetReservedBits()
		if offset > 0 {
			rec.Bits.Set(0, genMatch)
		}

		view := jetView{
			pt: float64(rec.Pt), rawPt: j.Raw.Pt,
			eta: float64(rec.Eta), phi: float64(rec.Phi), mass: float64(rec.Mass),
			area: j.Area, charge: j.Charge,
			btagCSV: j.BTagCSV, btagTCHP: j.BTagTCHP,
			secVtxMass: secVtxMass, pullAngl: pull,
		}
		for k, pred := range b.preds {
			rec.Bits.Set(offset+k, pred(&view))
		}

		b.out = append(b.out, *rec)
	}
	return b.out
}

// pullAngle computes the jet pull against the raw-momentum axis. The raw axis
// matches the frame the constituents were clustered in, independent of which
// momentum is persisted.
func (b *JetBuilder) pullAngle(j *event.Jet) float64 {
	b.constituents = b.constituents[:0]
	for _, c := range j.Constituents {
		b.constituents = append(b.constituents, kinematics.Constituent{
			Pt:       c.Pt,
			Rapidity: c.Rapidity,
			Phi:      c.Phi,
		})
	}
	axisY := kinematics.Rapidity(j.Raw.Pt, j.Raw.Eta, j.Raw.Mass)
	return kinematics.PullAngle(axisY, j.Raw.Phi, b.constituents)
}

// jetGenMatch implements the reserved-bit matching definition: a generator
// jet exists, is above the matching pt threshold, and lies within the
// matching cone of the calibrated jet direction.
func jetGenMatch(j *event.Jet) bool {
	if j.GenJet == nil {
		return false
	}
	if j.GenJet.Pt <= genMatchMinPt {
		return false
	}
	return kinematics.DeltaR(j.Corrected.Eta, j.Corrected.Phi, j.GenJet.Eta, j.GenJet.Phi) < genMatchMaxDR
}
