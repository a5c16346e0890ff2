package contract

import (
	"math"

	"EconLab/internal/model"
)

// epsProb is the tolerance below which the effort/shirk probability gap is
// treated as zero and the incentive constraint as unsolvable.
const epsProb = 1e-8

// BestResponseEffort returns the agent's best response to the given wage pair.
// Ties favor effort.
func BestResponseEffort(wageHigh, wageLow, costHigh, costLow, probHigh, probLow float64) model.EffortChoice {
	ue := expectedIncome(wageHigh, wageLow, costHigh, probHigh)
	us := expectedIncome(wageHigh, wageLow, costLow, probLow)
	if ue >= us {
		return model.ChooseEffort
	}
	return model.ChooseShirk
}

func expectedIncome(wageHigh, wageLow, cost, prob float64) float64 {
	return prob*(wageHigh-cost) + (1-prob)*(wageLow-cost)
}

// ProposeOptimalContract derives the cheapest wage pair that satisfies both
// the participation constraint (binding) and the incentive constraint. The
// derivation works through the linear form w = a + b*Y: the minimal
// incentive-compatible share is b* = dC/(dP*dY), and the base pay a* is set
// so the agent's expected utility under effort equals the reservation
// utility exactly. Degenerate parameter sets (dP ~ 0, no revenue spread, or
// b* > 1) fall back to a flat 50% revenue share rather than failing.
func ProposeOptimalContract(p model.ContractParameters) model.Contract {
	deltaC := p.CostHigh - p.CostLow
	deltaP := p.ProbHigh - p.ProbLow

	if deltaP <= epsProb || p.RevenueHigh <= p.RevenueLow {
		return fallbackContract(p)
	}

	deltaY := p.RevenueHigh - p.RevenueLow
	bStar := deltaC / (deltaP * deltaY)
	if bStar > 1 {
		// No share <= 100% induces effort.
		return fallbackContract(p)
	}

	expRevenue := p.ProbHigh*p.RevenueHigh + (1-p.ProbHigh)*p.RevenueLow
	aStar := p.ReservationUtility + p.CostHigh - bStar*expRevenue

	// Clip wages into [0, RevenueHigh] by shifting the base pay, keeping the
	// share (and therefore the incentive constraint) intact.
	wageLow := aStar + bStar*p.RevenueLow
	if wageLow < 0 {
		aStar += -wageLow
		wageLow = 0
	}
	wageHigh := aStar + bStar*p.RevenueHigh
	if wageHigh > p.RevenueHigh {
		aStar -= wageHigh - p.RevenueHigh
		wageHigh = p.RevenueHigh
		wageLow = math.Max(0, aStar+bStar*p.RevenueLow)
	}

	if wageLow < 0 || wageHigh < 0 || wageHigh > p.RevenueHigh {
		return fallbackContract(p)
	}
	return model.Contract{WageHigh: wageHigh, WageLow: wageLow}
}

func fallbackContract(p model.ContractParameters) model.Contract {
	return model.Contract{WageHigh: 0.5 * p.RevenueHigh, WageLow: 0.5 * p.RevenueLow}
}

// AgentExpectedIncome is the agent's expected income net of effort cost
// under the given contract and effort choice.
func AgentExpectedIncome(c model.Contract, p model.ContractParameters, effort model.EffortChoice) float64 {
	if effort == model.ChooseEffort {
		return expectedIncome(c.WageHigh, c.WageLow, p.CostHigh, p.ProbHigh)
	}
	return expectedIncome(c.WageHigh, c.WageLow, p.CostLow, p.ProbLow)
}

// PrincipalExpectedProfit is the principal's expected revenue net of wages
// under the given contract and the agent's effort choice.
func PrincipalExpectedProfit(c model.Contract, p model.ContractParameters, effort model.EffortChoice) float64 {
	prob := p.ProbLow
	if effort == model.ChooseEffort {
		prob = p.ProbHigh
	}
	return prob*(p.RevenueHigh-c.WageHigh) + (1-prob)*(p.RevenueLow-c.WageLow)
}

// EvaluateContract is the agent's accept/reject decision on a proposed
// contract: accept iff effort meets the reservation utility and beats
// shirking.
func EvaluateContract(c model.Contract, p model.ContractParameters) model.ContractEvaluation {
	ue := expectedIncome(c.WageHigh, c.WageLow, p.CostHigh, p.ProbHigh)
	us := expectedIncome(c.WageHigh, c.WageLow, p.CostLow, p.ProbLow)
	return model.ContractEvaluation{
		Accept:        ue >= p.ReservationUtility && ue >= us,
		UtilityEffort: ue,
		UtilityShirk:  us,
	}
}

// CounterOffer computes a Nash-bargaining split once a proposed contract has
// been rejected: total surplus above the principal's profit floor and the
// agent's reservation utility is shared evenly, with the wage spread pinned
// to dC/dP so effort stays incentive compatible. Returns nil when no
// feasible surplus-sharing contract exists.
func CounterOffer(p model.ContractParameters, minPrincipalProfit float64) *model.Contract {
	deltaP := p.ProbHigh - p.ProbLow
	if deltaP <= 0 {
		return nil
	}

	totalOutput := p.ProbHigh*p.RevenueHigh + (1-p.ProbHigh)*p.RevenueLow - p.CostHigh
	surplus := totalOutput - minPrincipalProfit - p.ReservationUtility
	if surplus <= 0 {
		return nil
	}

	spread := (p.CostHigh - p.CostLow) / deltaP
	expWage := p.CostHigh + p.ReservationUtility + surplus/2

	wageLow := expWage - p.ProbHigh*spread
	if wageLow < 0 {
		// Even split pushes the low wage negative; retreat to the minimal
		// IR+IC contract instead.
		wageLow = p.CostHigh + p.ReservationUtility - p.ProbHigh*spread
		if wageLow < 0 {
			return nil
		}
	}
	return &model.Contract{WageHigh: wageLow + spread, WageLow: wageLow}
}
