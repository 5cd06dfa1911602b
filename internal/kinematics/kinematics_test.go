package kinematics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-12

func TestWrapDeltaPhi(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},        // boundary maps to +pi, interval is (-pi, pi]
		{math.Pi + 0.1, -math.Pi + 0.1},
		{-math.Pi - 0.1, math.Pi - 0.1},
	}
	for _, c := range cases {
		if got := WrapDeltaPhi(c.in); !scalar.EqualWithinAbs(got, c.want, tol) {
			t.Errorf("WrapDeltaPhi(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRapidityMasslessEqualsEta(t *testing.T) {
	for _, eta := range []float64{-2.4, -0.5, 0, 1.3, 3.0} {
		if got := Rapidity(40, eta, 0); !scalar.EqualWithinAbs(got, eta, tol) {
			t.Errorf("Rapidity(40, %v, 0) = %v, want eta", eta, got)
		}
	}
}

func TestRapidityMassiveBelowEta(t *testing.T) {
	// A massive object's rapidity magnitude is strictly below |eta|.
	y := Rapidity(30, 1.5, 20)
	if y <= 0 || y >= 1.5 {
		t.Errorf("Rapidity(30, 1.5, 20) = %v, want in (0, 1.5)", y)
	}
}

func TestPullAngleZeroConstituents(t *testing.T) {
	if got := PullAngle(0.5, 1.0, nil); got != 0 {
		t.Errorf("PullAngle with no constituents = %v, want sentinel 0", got)
	}
}

func TestPullAngleSimpleAsymmetry(t *testing.T) {
	// One constituent displaced purely in rapidity: pull points along +y,
	// so the angle is 0. Displaced purely in +phi: angle is pi/2.
	alongY := []Constituent{{Pt: 10, Rapidity: 0.3, Phi: 1.0}}
	if got := PullAngle(0, 1.0, alongY); !scalar.EqualWithinAbs(got, 0, tol) {
		t.Errorf("pull along rapidity = %v, want 0", got)
	}
	alongPhi := []Constituent{{Pt: 10, Rapidity: 0, Phi: 1.3}}
	if got := PullAngle(0, 1.0, alongPhi); !scalar.EqualWithinAbs(got, math.Pi/2, tol) {
		t.Errorf("pull along phi = %v, want pi/2", got)
	}
}

func TestPullAngleRotationInvariantAcrossBoundary(t *testing.T) {
	// The same constituent pattern must give the same pull angle whether the
	// jet sits at phi = 0 or straddles the pi/-pi boundary.
	pattern := []struct{ pt, dy, dphi float64 }{
		{12, 0.10, 0.20},
		{8, -0.05, -0.15},
		{5, 0.02, 0.30},
	}

	build := func(axisPhi float64) []Constituent {
		out := make([]Constituent, len(pattern))
		for i, p := range pattern {
			phi := axisPhi + p.dphi
			// Re-wrap into the nominal azimuth range the way an upstream
			// reconstruction would report it.
			for phi > math.Pi {
				phi -= 2 * math.Pi
			}
			for phi <= -math.Pi {
				phi += 2 * math.Pi
			}
			out[i] = Constituent{Pt: p.pt, Rapidity: 0.4 + p.dy, Phi: phi}
		}
		return out
	}

	away := PullAngle(0.4, 0, build(0))
	atBoundary := PullAngle(0.4, math.Pi-0.05, build(math.Pi-0.05))
	if !scalar.EqualWithinAbs(away, atBoundary, 1e-9) {
		t.Errorf("pull angle at boundary = %v, away from boundary = %v", atBoundary, away)
	}
}

func TestRelativeIsolationClampsNegative(t *testing.T) {
	// Strongly negative pile-up-subtracted term: only the charged component
	// survives, and the ratio is never negative.
	sums := IsolationSums{ChargedHadron: 2, NeutralHadron: 1, Photon: 0.5, PileUp: 100}
	got := RelativeIsolation(sums, MuonIsolationBeta, 40)
	if !scalar.EqualWithinAbs(got, 2.0/40, tol) {
		t.Errorf("clamped isolation = %v, want %v", got, 2.0/40)
	}

	zeroCharged := IsolationSums{PileUp: 100}
	if got := RelativeIsolation(zeroCharged, MuonIsolationBeta, 40); got != 0 {
		t.Errorf("isolation = %v, want 0", got)
	}
	if got := RelativeIsolation(zeroCharged, MuonIsolationBeta, 40); got < 0 {
		t.Errorf("isolation went negative: %v", got)
	}
}

func TestRelativeIsolationBeta(t *testing.T) {
	sums := IsolationSums{ChargedHadron: 1, NeutralHadron: 2, Photon: 1, PileUp: 2}
	// beta 0.5: numerator = 1 + (2 + 1 - 1) = 3
	if got := RelativeIsolation(sums, 0.5, 30); !scalar.EqualWithinAbs(got, 3.0/30, tol) {
		t.Errorf("delta-beta isolation = %v, want %v", got, 3.0/30)
	}
	// beta 1.0: numerator = 1 + (2 + 1 - 2) = 2
	if got := RelativeIsolation(sums, 1.0, 30); !scalar.EqualWithinAbs(got, 2.0/30, tol) {
		t.Errorf("effective-area isolation = %v, want %v", got, 2.0/30)
	}
}

func TestRelativeIsolationZeroReference(t *testing.T) {
	sums := IsolationSums{ChargedHadron: 5}
	if got := RelativeIsolation(sums, 1.0, 0); got != 0 {
		t.Errorf("isolation with zero reference pt = %v, want 0", got)
	}
}

func TestDeltaR(t *testing.T) {
	// Pure eta separation.
	if got := DeltaR(1.0, 0.5, 0.0, 0.5); !scalar.EqualWithinAbs(got, 1.0, tol) {
		t.Errorf("DeltaR eta-only = %v, want 1", got)
	}
	// Phi separation across the boundary is the short way around.
	got := DeltaR(0, math.Pi-0.1, 0, -math.Pi+0.1)
	if !scalar.EqualWithinAbs(got, 0.2, tol) {
		t.Errorf("DeltaR across boundary = %v, want 0.2", got)
	}
}
