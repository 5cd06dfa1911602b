package builder

import "github.com/banshee-data/pectuple/internal/selector"

// Attribute views expose the stored kinematics and derived quantities of one
// object to the selector evaluator. Values are snapshotted into a flat struct
// before evaluation so predicates see exactly what the output record sees.
// Boolean attributes appear as 0 or 1.

// ElectronAttributes is the attribute set electron selections compile against.
func ElectronAttributes() selector.Attributes {
	return selector.NewAttributes(
		"pt", "eta", "phi", "charge", "db", "rel_iso",
		"mva_id", "cut_based_id", "pass_conversion_veto",
	)
}

// MuonAttributes is the attribute set muon selections compile against.
func MuonAttributes() selector.Attributes {
	return selector.NewAttributes(
		"pt", "eta", "phi", "charge", "db", "rel_iso", "is_tight",
	)
}

// JetAttributes is the attribute set jet selections compile against.
func JetAttributes() selector.Attributes {
	return selector.NewAttributes(
		"pt", "raw_pt", "eta", "phi", "mass", "area", "charge",
		"btag_csv", "btag_tchp", "sec_vertex_mass", "pull_angle",
	)
}

type electronView struct {
	pt, eta, phi       float64
	charge, db, relIso float64
	mvaID, cutBasedID  float64
	convVeto           float64
}

func (v *electronView) Attr(name string) (float64, bool) {
	switch name {
	case "pt":
		return v.pt, true
	case "eta":
		return v.eta, true
	case "phi":
		return v.phi, true
	case "charge":
		return v.charge, true
	case "db":
		return v.db, true
	case "rel_iso":
		return v.relIso, true
	case "mva_id":
		return v.mvaID, true
	case "cut_based_id":
		return v.cutBasedID, true
	case "pass_conversion_veto":
		return v.convVeto, true
	}
	return 0, false
}

type muonView struct {
	pt, eta, phi       float64
	charge, db, relIso float64
	isTight            float64
}

func (v *muonView) Attr(name string) (float64, bool) {
	switch name {
	case "pt":
		return v.pt, true
	case "eta":
		return v.eta, true
	case "phi":
		return v.phi, true
	case "charge":
		return v.charge, true
	case "db":
		return v.db, true
	case "rel_iso":
		return v.relIso, true
	case "is_tight":
		return v.isTight, true
	}
	return 0, false
}

type jetView struct {
	pt, rawPt            float64
	eta, phi, mass       float64
	area, charge         float64
	btagCSV, btagTCHP    float64
	secVtxMass, pullAngl float64
}

func (v *jetView) Attr(name string) (float64, bool) {
	switch name {
	case "pt":
		return v.pt, true
	case "raw_pt":
		return v.rawPt, true
	case "eta":
		return v.eta, true
	case "phi":
		return v.phi, true
	case "mass":
		return v.mass, true
	case "area":
		return v.area, true
	case "charge":
		return v.charge, true
	case "btag_csv":
		return v.btagCSV, true
	case "btag_tchp":
		return v.btagTCHP, true
	case "sec_vertex_mass":
		return v.secVtxMass, true
	case "pull_angle":
		return v.pullAngl, true
	}
	return 0, false
}

func boolAttr(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
