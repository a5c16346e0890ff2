package insurance

import (
	"math"
	"math/rand"
	"testing"

	"EconLab/internal/model"
)

func theftParams() model.MoralHazardParameters {
	return model.MoralHazardParameters{
		InitialWealth:   100000,
		LossValue:       20000,
		BaseTheftProb:   0.25,
		DeviceTheftProb: 0.15,
		DeviceCost:      1950,
	}
}

func TestUtility_NonPositiveWealth(t *testing.T) {
	for _, w := range []float64{0, -1, -100} {
		if u := Utility(w, 0.5); !math.IsInf(u, -1) {
			t.Errorf("Utility(%.0f) should be -Inf, got %.4f", w, u)
		}
	}
}

func TestUtility_LogSingularity(t *testing.T) {
	// The generic CRRA form must approach log utility as gamma -> 1.
	for _, w := range []float64{1.5, 10, 100, 1000} {
		logU := Utility(w, 1.0)
		if math.Abs(logU-math.Log(w)) > 1e-12 {
			t.Fatalf("Utility(%.1f, 1) should be ln(w)", w)
		}
		for _, gamma := range []float64{1 - 1e-7, 1 + 1e-7} {
			if diff := math.Abs(Utility(w, gamma) - logU); diff > 1e-5 {
				t.Errorf("discontinuity at gamma=%v, w=%.1f: diff %.2e", gamma, w, diff)
			}
		}
	}
}

func TestUtility_MonotonicInWealth(t *testing.T) {
	wealths := []float64{10, 50, 100, 1000, 50000, 200000}
	for _, gamma := range []float64{-1, 0, 0.5, 1, 2, 3} {
		prev := math.Inf(-1)
		for _, w := range wealths {
			u := Utility(w, gamma)
			if u < prev {
				t.Errorf("gamma=%.1f: utility decreased from %.6f to %.6f at w=%.0f", gamma, prev, u, w)
			}
			prev = u
		}
	}
}

func TestDecide_NoMoralHazardNoExtraPayout(t *testing.T) {
	p := theftParams()
	for _, gamma := range []float64{-1, 0, 0.5, 1, 2, 3} {
		d := Decide(gamma, 0, p)
		if d.ExtraExpectedPayout != 0 {
			t.Errorf("gamma=%.1f: extra payout %.4f with zero delta", gamma, d.ExtraExpectedPayout)
		}
	}
}

func TestDecide_RiskAverseInsures(t *testing.T) {
	d := Decide(2.0, 0.1, theftParams())
	if d.Outcome != model.InsureNoDevice {
		t.Fatalf("strongly risk-averse agent should insure and skip the device, got %s", d.Outcome)
	}
	if !d.Insured || d.InstallDevice {
		t.Errorf("inconsistent flags: insured=%v install=%v", d.Insured, d.InstallDevice)
	}
	// actual prob 0.25+0.1 -> extra payout 20000*0.1
	if math.Abs(d.ExtraExpectedPayout-2000) > 1e-9 {
		t.Errorf("expected extra payout 2000, got %.4f", d.ExtraExpectedPayout)
	}
	if math.Abs(d.Premium-5000) > 1e-9 {
		t.Errorf("expected fair premium 5000, got %.4f", d.Premium)
	}
}

func TestDecide_RiskNeutralSelfProtects(t *testing.T) {
	// Linear utility: the device (cost 1950, saves 0.10*20000 = 2000 in
	// expectation) beats both bare risk and the fair premium.
	d := Decide(0, 0.3, theftParams())
	if d.Outcome != model.NoInsureDevice {
		t.Fatalf("risk-neutral agent should self-protect, got %s", d.Outcome)
	}
	if d.ExtraExpectedPayout != 0 {
		t.Errorf("uninsured agent cannot cost the insurer anything, got %.4f", d.ExtraExpectedPayout)
	}
}

func TestPolicyMap_GridShapeAndConsistency(t *testing.T) {
	p := theftParams()
	grid := PolicyMap(model.SweepRange{Min: -1, Max: 3}, model.SweepRange{Min: 0, Max: 1}, 9, p)

	if len(grid.Gammas) != 9 || len(grid.Deltas) != 9 {
		t.Fatalf("expected 9x9 axes, got %dx%d", len(grid.Gammas), len(grid.Deltas))
	}
	if grid.Gammas[0] != -1 || grid.Gammas[8] != 3 || grid.Deltas[0] != 0 || grid.Deltas[8] != 1 {
		t.Fatalf("axis endpoints must match the requested ranges")
	}

	// Every cell must agree with a direct Decide call.
	for i, gamma := range grid.Gammas {
		for j, delta := range grid.Deltas {
			want := Decide(gamma, delta, p)
			if grid.Outcomes[i][j] != want.Outcome {
				t.Fatalf("cell (%d,%d): outcome %s, direct decide %s", i, j, grid.Outcomes[i][j], want.Outcome)
			}
			if math.Abs(grid.ExtraPayouts[i][j]-want.ExtraExpectedPayout) > 1e-12 {
				t.Fatalf("cell (%d,%d): payout mismatch", i, j)
			}
		}
	}
}

func TestSimulateOnce_FullInsuranceWealthIsCertain(t *testing.T) {
	p := theftParams()
	d := model.Decision{Insured: true, InstallDevice: false, Premium: 5000, Delta: 0.2}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		out := SimulateOnce(rng, d, p)
		if math.Abs(out.FinalWealth-95000) > 1e-9 {
			t.Fatalf("fully insured wealth must be w - premium regardless of theft, got %.2f", out.FinalWealth)
		}
	}
}

func TestSimulateOnce_UninsuredBearsTheLoss(t *testing.T) {
	p := theftParams()
	d := model.Decision{Insured: false, InstallDevice: false, Delta: 0.5}
	rng := rand.New(rand.NewSource(2))

	sawTheft, sawSafe := false, false
	for i := 0; i < 200; i++ {
		out := SimulateOnce(rng, d, p)
		// Moral hazard must not apply without insurance.
		if math.Abs(out.TheftProb-p.BaseTheftProb) > 1e-12 {
			t.Fatalf("uninsured theft prob should stay at base %.2f, got %.4f", p.BaseTheftProb, out.TheftProb)
		}
		switch {
		case out.Theft:
			sawTheft = true
			if math.Abs(out.FinalWealth-80000) > 1e-9 {
				t.Fatalf("uninsured theft should cost the full loss, wealth %.2f", out.FinalWealth)
			}
		default:
			sawSafe = true
			if math.Abs(out.FinalWealth-100000) > 1e-9 {
				t.Fatalf("no theft should leave wealth unchanged, got %.2f", out.FinalWealth)
			}
		}
	}
	if !sawTheft || !sawSafe {
		t.Error("expected both theft and no-theft draws over 200 trials")
	}
}
