package insurance

import (
	"math"
	"math/rand"
	"sync"

	"EconLab/internal/model"
)

// Utility is CRRA utility of wealth with exponent gamma. Non-positive wealth
// is an infeasible outcome and maps to -Inf so the branch is never chosen;
// gamma = 1 is the removable log-utility singularity.
func Utility(wealth, gamma float64) float64 {
	if wealth <= 0 {
		return math.Inf(-1)
	}
	if math.Abs(gamma-1.0) < 1e-8 {
		return math.Log(wealth)
	}
	return (math.Pow(wealth, 1-gamma) - 1) / (1 - gamma)
}

// Decide evaluates the four insure/install-device strategies under the given
// risk aversion and moral-hazard intensity, and classifies the optimum.
// The premium is actuarially fair against the base theft probability: the
// insurer assumes no device, so any post-contract slack is its loss, reported
// as ExtraExpectedPayout.
func Decide(gamma, delta float64, p model.MoralHazardParameters) model.Decision {
	u := func(w float64) float64 { return Utility(w, gamma) }
	premium := p.LossValue * p.BaseTheftProb

	// Without insurance the agent bears the theft risk and may pay for the
	// device to lower it.
	euNoDevice := (1-p.BaseTheftProb)*u(p.InitialWealth) +
		p.BaseTheftProb*u(p.InitialWealth-p.LossValue)
	euDevice := (1-p.DeviceTheftProb)*u(p.InitialWealth-p.DeviceCost) +
		p.DeviceTheftProb*u(p.InitialWealth-p.LossValue-p.DeviceCost)
	installUninsured := euDevice > euNoDevice
	euUninsured := euNoDevice
	if installUninsured {
		euUninsured = euDevice
	}

	// Under full insurance wealth is certain either way, so the device is
	// pure cost and is essentially never worth installing.
	uNoDevice := u(p.InitialWealth - premium)
	uDevice := u(p.InitialWealth - premium - p.DeviceCost)
	installInsured := uDevice > uNoDevice
	uInsured := uNoDevice
	if installInsured {
		uInsured = uDevice
	}

	wouldInsure := uNoDevice >= euUninsured

	baseProb := p.BaseTheftProb
	if installInsured {
		baseProb = p.DeviceTheftProb
	}
	actualProb := clamp(baseProb+delta, 0, 1)
	var extra float64
	if wouldInsure && actualProb > p.BaseTheftProb {
		extra = p.LossValue * (actualProb - p.BaseTheftProb)
	}

	install := installUninsured
	if wouldInsure {
		install = installInsured
	}

	var outcome model.StrategyOutcome
	switch {
	case !wouldInsure && !installUninsured:
		outcome = model.NoInsureNoDevice
	case !wouldInsure:
		outcome = model.NoInsureDevice
	case installInsured:
		outcome = model.InsureDevice
	default:
		outcome = model.InsureNoDevice
	}

	return model.Decision{
		Outcome:             outcome,
		Insured:             wouldInsure,
		InstallDevice:       install,
		Premium:             premium,
		UtilityUninsured:    euUninsured,
		UtilityInsured:      uInsured,
		ExtraExpectedPayout: extra,
		Gamma:               gamma,
		Delta:               delta,
	}
}

// PolicyMap evaluates Decide over a resolution x resolution grid spanning
// gammaRange x deltaRange. Cells are independent, so rows are computed
// concurrently; the result is row-major over (gamma, delta).
func PolicyMap(gammaRange, deltaRange model.SweepRange, resolution int, p model.MoralHazardParameters) *model.PolicyGrid {
	if resolution < 2 {
		resolution = 2
	}
	grid := &model.PolicyGrid{
		Gammas:       linspace(gammaRange.Min, gammaRange.Max, resolution),
		Deltas:       linspace(deltaRange.Min, deltaRange.Max, resolution),
		Outcomes:     make([][]model.StrategyOutcome, resolution),
		ExtraPayouts: make([][]float64, resolution),
	}

	var wg sync.WaitGroup
	for i, gamma := range grid.Gammas {
		wg.Add(1)
		go func(i int, gamma float64) {
			defer wg.Done()
			outcomes := make([]model.StrategyOutcome, len(grid.Deltas))
			extras := make([]float64, len(grid.Deltas))
			for j, delta := range grid.Deltas {
				d := Decide(gamma, delta, p)
				outcomes[j] = d.Outcome
				extras[j] = d.ExtraExpectedPayout
			}
			grid.Outcomes[i] = outcomes
			grid.ExtraPayouts[i] = extras
		}(i, gamma)
	}
	wg.Wait()

	return grid
}

// SimulateOnce draws a single theft realization for a prior decision and
// returns the agent's final wealth. The RNG is injected so demo runs are
// reproducible under a fixed seed.
func SimulateOnce(rng *rand.Rand, d model.Decision, p model.MoralHazardParameters) model.DemoOutcome {
	baseProb := p.BaseTheftProb
	if d.InstallDevice {
		baseProb = p.DeviceTheftProb
	}
	theftProb := baseProb
	if d.Insured {
		// Moral hazard only bites once the loss is shifted to the insurer.
		theftProb = clamp(baseProb+d.Delta, 0, 1)
	}

	theft := rng.Float64() < theftProb

	wealth := p.InitialWealth
	if d.Insured {
		wealth -= d.Premium
	}
	if d.InstallDevice {
		wealth -= p.DeviceCost
	}
	if theft {
		wealth -= p.LossValue
		if d.Insured {
			wealth += p.LossValue // full indemnity
		}
	}

	return model.DemoOutcome{TheftProb: theftProb, Theft: theft, FinalWealth: wealth}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func linspace(min, max float64, n int) []float64 {
	out := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	return out
}
