package builder

import (
	"fmt"

	"github.com/banshee-data/pectuple/internal/config"
	"github.com/banshee-data/pectuple/internal/event"
	"github.com/banshee-data/pectuple/internal/kinematics"
	"github.com/banshee-data/pectuple/internal/pec"
	"github.com/banshee-data/pectuple/internal/selector"
)

// checkBitBudget verifies that the reserved built-in bits plus the configured
// selector bits fit into one packed field. This is the initialization-time
// guard that makes a later out-of-range Set a genuine contract violation.
func checkBitBudget(object string, reserved, selectors int) error {
	if reserved+selectors > pec.BitFieldWidth {
		return fmt.Errorf("%s: %d reserved + %d selector bits exceed bit-field width %d",
			object, reserved, selectors, pec.BitFieldWidth)
	}
	return nil
}

// ElectronBuilder flattens the electron collection.
type ElectronBuilder struct {
	schema   Schema
	momentum string
	idMaps   []string
	preds    []selector.Predicate

	scratch pec.Electron
	out     []pec.Electron
}

// NewElectronBuilder compiles the configured electron selections and fixes
// the momentum-estimator variant and identification-map order.
func NewElectronBuilder(schema Schema, momentum string, idMaps, selections []string) (*ElectronBuilder, error) {
	preds, err := selector.CompileList(selections, ElectronAttributes())
	if err != nil {
		return nil, fmt.Errorf("electron selections: %w", err)
	}
	if err := checkBitBudget("electron", schema.ElectronReservedBits(), len(preds)); err != nil {
		return nil, err
	}
	if len(idMaps) > pec.BitFieldWidth {
		return nil, fmt.Errorf("electron: %d identification maps exceed bit-field width %d",
			len(idMaps), pec.BitFieldWidth)
	}
	return &ElectronBuilder{
		schema:   schema,
		momentum: momentum,
		idMaps:   idMaps,
		preds:    preds,
	}, nil
}

// Build emits one record per input electron, preserving input order. The
// returned slice is owned by the builder and valid until the next Build.
func (b *ElectronBuilder) Build(electrons []event.Electron) []pec.Electron {
	b.out = b.out[:0]
	for i := range electrons {
		el := &electrons[i]
		rec := &b.scratch
		rec.Reset()

		var pt, eta, phi float64
		switch b.momentum {
		case config.ElectronMomentumStandard:
			pt, eta, phi = el.Pt, el.Eta, el.Phi
		default:
			pt, eta, phi = el.GsfPt, el.GsfEta, el.GsfPhi
		}
		rec.Pt = float32(pt)
		rec.Eta = float32(eta)
		rec.Phi = float32(phi)

		rec.Charge = int8(el.Charge)
		rec.DB = float32(el.DB)

		relIso := kinematics.RelativeIsolation(kinematics.IsolationSums{
			ChargedHadron: el.ChargedHadronIso,
			NeutralHadron: el.NeutralHadronIso,
			Photon:        el.PhotonIso,
			PileUp:        el.EffectiveAreaPU,
		}, kinematics.ElectronIsolationBeta, pt)
		rec.RelIso = float32(relIso)

		rec.MvaID = float32(el.MvaID)
		rec.CutBasedID = float32(el.CutBasedID)

		// Optional working-point decisions, packed in configured map order.
		// A map absent on the object stays at its neutral false.
		for k, name := range b.idMaps {
			rec.IDBits.Set(k, el.IDDecisions[name])
		}

		rec.Bits.Set(0, el.PassConversionVeto)

		view := electronView{
			pt: pt, eta: eta, phi: phi,
			charge: float64(el.Charge), db: el.DB, relIso: relIso,
			mvaID: el.MvaID, cutBasedID: el.CutBasedID,
			convVeto: boolAttr(el.PassConversionVeto),
		}
		offset := b.schema.ElectronReservedBits()
		for k, pred := range b.preds {
			rec.Bits.Set(offset+k, pred(&view))
		}

		b.out = append(b.out, *rec)
	}
	return b.out
}

// MuonBuilder flattens the muon collection.
type MuonBuilder struct {
	schema Schema
	preds  []selector.Predicate

	scratch pec.Muon
	out     []pec.Muon
}

// NewMuonBuilder compiles the configured muon selections.
func NewMuonBuilder(schema Schema, selections []string) (*MuonBuilder, error) {
	preds, err := selector.CompileList(selections, MuonAttributes())
	if err != nil {
		return nil, fmt.Errorf("muon selections: %w", err)
	}
	if err := checkBitBudget("muon", schema.MuonReservedBits(), len(preds)); err != nil {
		return nil, err
	}
	return &MuonBuilder{schema: schema, preds: preds}, nil
}

// Build emits one record per input muon, preserving input order. The returned
// slice is owned by the builder and valid until the next Build.
func (b *MuonBuilder) Build(muons []event.Muon) []pec.Muon {
	b.out = b.out[:0]
	for i := range muons {
		mu := &muons[i]
		rec := &b.scratch
		rec.Reset()

		rec.Pt = float32(mu.Pt)
		rec.Eta = float32(mu.Eta)
		rec.Phi = float32(mu.Phi)

		rec.Charge = int8(mu.Charge)
		rec.DB = float32(mu.DB)

		// Delta-beta correction: the pile-up component is the PU
		// charged-hadron sum.
		relIso := kinematics.RelativeIsolation(kinematics.IsolationSums{
			ChargedHadron: mu.ChargedHadronIso,
			NeutralHadron: mu.NeutralHadronIso,
			Photon:        mu.PhotonIso,
			PileUp:        mu.PUChargedHadronIso,
		}, kinematics.MuonIsolationBeta, mu.Pt)
		rec.RelIso = float32(relIso)

		rec.Bits.Set(0, mu.IsTight)

		view := muonView{
			pt: mu.Pt, eta: mu.Eta, phi: mu.Phi,
			charge: float64(mu.Charge), db: mu.DB, relIso: relIso,
			isTight: boolAttr(mu.IsTight),
		}
		offset := b.schema.MuonReservedBits()
		for k, pred := range b.preds {
			rec.Bits.Set(offset+k, pred(&view))
		}

		b.out = append(b.out, *rec)
	}
	return b.out
}
