package contract

import (
	"math/rand"

	"EconLab/internal/model"
)

// SampleAgentCosts draws demo effort/shirk costs that leave the principal
// room to design an incentive-compatible wage spread:
//   - effort cost between 5% and 15% of the high revenue,
//   - shirk cost at most half the effort cost,
//   - cost gap capped at a quarter of the revenue spread.
//
// The RNG is injected so demo runs are reproducible under a fixed seed.
func SampleAgentCosts(rng *rand.Rand, revenueHigh, revenueLow float64) model.AgentCosts {
	hiMin := int(0.05 * revenueHigh)
	hiMax := int(0.15 * revenueHigh)
	if hiMax < hiMin {
		hiMax = hiMin
	}
	costHigh := hiMin + rng.Intn(hiMax-hiMin+1)

	loMax := costHigh / 2
	if loMax < 1 {
		loMax = 1
	}
	costLow := rng.Intn(loMax + 1)

	// Walk the effort cost down until the gap is small enough for a
	// feasible incentive-compatible share.
	maxGap := (revenueHigh - revenueLow) / 4
	for float64(costHigh-costLow) > maxGap && costHigh > hiMin {
		costHigh--
	}
	if costHigh <= costLow {
		costLow = costHigh - 1
		if costLow < 0 {
			costLow = 0
		}
	}

	return model.AgentCosts{CostHigh: float64(costHigh), CostLow: float64(costLow)}
}
