//go:build property
// +build property

package lemon

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"EconLab/internal/model"
)

// TestSimulatorInvariants checks the market invariants over random parameter
// sets: trust stays in [0,1] after every step, counts stay non-negative, and
// high-quality sellers only ever leave.
func TestSimulatorInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("trust bounded and high count non-increasing", prop.ForAll(
		func(totalCars int, frac, valueLow, spread, beta, gamma float64, periods int) bool {
			params := model.MarketParameters{
				TotalCars:           totalCars,
				InitialHighFraction: frac,
				ValueHigh:           valueLow + spread,
				ValueLow:            valueLow,
				TrustSpeed:          beta,
				ExitSensitivity:     gamma,
				MaxPeriods:          periods,
			}
			sim := NewSimulator(params)
			prevHigh := sim.HighCount()
			recs, _ := sim.Run()
			for _, rec := range recs {
				if rec.Trust < 0 || rec.Trust > 1 {
					return false
				}
				if rec.HighCount < 0 || rec.LowCount < 0 {
					return false
				}
				if rec.HighCount > prevHigh {
					return false
				}
				prevHigh = rec.HighCount
			}
			return true
		},
		gen.IntRange(1, 500),
		gen.Float64Range(0, 1),
		gen.Float64Range(1, 5000),
		gen.Float64Range(1, 5000),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}
