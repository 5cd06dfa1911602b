// Package kinematics provides the derived scalar and angular quantities the
// record builders need: azimuth wrap-around, angular distances, rapidity, the
// jet pull angle, and pile-up-corrected relative isolation.
package kinematics

import "math"

// WrapDeltaPhi normalises an azimuth difference into (-pi, pi] with a single
// additive correction. The inputs are assumed to lie within one full turn of
// each other, so no modulo reduction is needed.
func WrapDeltaPhi(dphi float64) float64 {
	if dphi <= -math.Pi {
		return dphi + 2*math.Pi
	}
	if dphi > math.Pi {
		return dphi - 2*math.Pi
	}
	return dphi
}

// DeltaPhi returns the wrapped azimuth difference phi1 - phi2.
func DeltaPhi(phi1, phi2 float64) float64 {
	return WrapDeltaPhi(phi1 - phi2)
}

// DeltaR returns the angular distance between two directions in the
// (eta, phi) plane.
func DeltaR(eta1, phi1, eta2, phi2 float64) float64 {
	return math.Hypot(eta1-eta2, DeltaPhi(phi1, phi2))
}

// Rapidity computes the longitudinal rapidity of a four-momentum given in
// (pt, eta, mass) form. For a massless object it equals eta.
func Rapidity(pt, eta, mass float64) float64 {
	if mass == 0 {
		return eta
	}
	mt := math.Sqrt(mass*mass + pt*pt)
	return math.Log((math.Sqrt(mass*mass+pt*pt*math.Cosh(eta)*math.Cosh(eta)) + pt*math.Sinh(eta)) / mt)
}

// Constituent is one jet constituent as seen by the pull-angle computation:
// its transverse momentum and its direction in the (rapidity, azimuth) plane.
type Constituent struct {
	Pt       float64
	Rapidity float64
	Phi      float64
}

// PullAngle accumulates the pt-weighted angular moments of the constituents
// relative to the jet axis and returns atan2 of the azimuthal projection over
// the rapidity projection. Normalising by the total pt would not change the
// angle and is omitted.
//
// A jet with no constituents returns 0, the documented sentinel for an
// undefined pull.
func PullAngle(axisRapidity, axisPhi float64, constituents []Constituent) float64 {
	if len(constituents) == 0 {
		return 0
	}
	var pullY, pullPhi float64
	for _, c := range constituents {
		dy := c.Rapidity - axisRapidity
		dphi := WrapDeltaPhi(c.Phi - axisPhi)
		r := math.Hypot(dy, dphi)
		pullY += c.Pt * r * dy
		pullPhi += c.Pt * r * dphi
	}
	return math.Atan2(pullPhi, pullY)
}

// IsolationSums holds the per-object isolation sub-components computed
// upstream. PileUp is the component the beta factor scales: the pile-up
// charged-hadron sum for muons, the effective-area term for electrons.
type IsolationSums struct {
	ChargedHadron float64
	NeutralHadron float64
	Photon        float64
	PileUp        float64
}

// Per-object-type pile-up correction factors. These are fixed by the
// correction recipe for each object type, not user-configurable.
const (
	// MuonIsolationBeta scales the pile-up charged-hadron sum in the
	// delta-beta correction.
	MuonIsolationBeta = 0.5
	// ElectronIsolationBeta scales the effective-area term in the rho-based
	// correction.
	ElectronIsolationBeta = 1.0
)

// RelativeIsolation returns the pile-up-corrected isolation ratio. The
// neutral part is clamped at zero before division, so the result is never
// negative. A non-positive reference pt yields 0.
func RelativeIsolation(sums IsolationSums, beta, refPt float64) float64 {
	if refPt <= 0 {
		return 0
	}
	neutral := sums.NeutralHadron + sums.Photon - beta*sums.PileUp
	if neutral < 0 {
		neutral = 0
	}
	return (sums.ChargedHadron + neutral) / refPt
}
