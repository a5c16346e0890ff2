package signaling

import (
	"fmt"

	"EconLab/internal/model"
)

// SignalSelector picks the recommended education level inside a separating
// interval. Theory only pins down the interval, not the point; the choice is
// a policy decision the caller may override.
type SignalSelector func(low, high float64) float64

// Midpoint is the default selector.
func Midpoint(low, high float64) float64 { return (low + high) / 2 }

// ComputeThresholds computes the separating-equilibrium education bounds
// with the midpoint selector.
func ComputeThresholds(p model.SignalingParameters) (model.SignalingThresholds, error) {
	return ComputeThresholdsWith(p, Midpoint)
}

// ComputeThresholdsWith computes the bounds with a caller-supplied signal
// selector. The wage premium and single-crossing preconditions are genuine
// modeling assumptions: violating them makes the game ill-posed, so they
// fail fast instead of falling back.
func ComputeThresholdsWith(p model.SignalingParameters, sel SignalSelector) (model.SignalingThresholds, error) {
	if p.WageHigh <= p.WageLow {
		return model.SignalingThresholds{}, fmt.Errorf(
			"signaling requires a wage premium: wage_high %.4f <= wage_low %.4f", p.WageHigh, p.WageLow)
	}
	if p.UnitCostLow <= p.UnitCostHigh {
		return model.SignalingThresholds{}, fmt.Errorf(
			"single crossing violated: unit_cost_low %.4f <= unit_cost_high %.4f", p.UnitCostLow, p.UnitCostHigh)
	}

	premium := p.WageHigh - p.WageLow
	th := model.SignalingThresholds{
		LowBound:  premium / p.UnitCostLow,
		HighBound: premium / p.UnitCostHigh,
	}

	// Single crossing guarantees LowBound < HighBound when both
	// preconditions hold, but equal-cost edge cases can still degenerate,
	// so the interval is checked rather than assumed.
	if th.LowBound < th.HighBound {
		th.Separating = true
		th.RecommendedSignal = sel(th.LowBound, th.HighBound)
	}
	return th, nil
}

// LaborUtility is the worker's payoff from investing in education with a
// quadratic signaling cost: the wage is earned only at or above the hiring
// threshold, the cost is sunk either way.
func LaborUtility(invest, threshold, wage, ability, costFactor float64) float64 {
	if invest < 0 {
		invest = 0
	}
	cost := costFactor * invest * invest
	if invest >= threshold {
		return wage*ability - cost
	}
	return -cost
}

// FirmPayoff is the firm's payoff from hiring a worker whose signal clears
// the threshold: ability-scaled output minus the wage, zero otherwise.
func FirmPayoff(invest, threshold, ability, wage float64) float64 {
	if invest < threshold {
		return 0
	}
	return 10 + 10*ability - wage
}
