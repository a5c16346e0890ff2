// Package riskpref evaluates two-outcome gambles under the power utility
// u(w) = w^gamma: gamma < 1 bends the curve concave (risk averse), gamma > 1
// convex (risk preferring), with a neutral band around 1.
package riskpref

import (
	"math"

	"EconLab/internal/model"
)

const neutralBand = 1e-3

// Classify maps the utility exponent to a risk attitude.
func Classify(gamma float64) model.RiskAttitude {
	if math.Abs(gamma-1.0) < neutralBand {
		return model.RiskNeutral
	}
	if gamma < 1.0 {
		return model.RiskAverse
	}
	return model.RiskPreferring
}

// Evaluate computes the gamble's expected value, expected utility, certainty
// equivalent, and risk premium E(w) - CE.
func Evaluate(p model.GambleParameters) model.GambleEvaluation {
	u, uInv := utilityFuncs(p.Gamma)

	ev := p.Prob*p.Outcome1 + (1-p.Prob)*p.Outcome2
	eu := p.Prob*u(p.Outcome1) + (1-p.Prob)*u(p.Outcome2)
	ce := uInv(eu)

	return model.GambleEvaluation{
		ExpectedValue:       ev,
		ExpectedUtility:     eu,
		CertaintyEquivalent: ce,
		RiskPremium:         ev - ce,
		Attitude:            Classify(p.Gamma),
	}
}

func utilityFuncs(gamma float64) (u, uInv func(float64) float64) {
	if math.Abs(gamma-1.0) < neutralBand {
		identity := func(x float64) float64 { return x }
		return identity, identity
	}
	u = func(x float64) float64 { return math.Pow(x, gamma) }
	uInv = func(y float64) float64 { return math.Pow(y, 1/gamma) }
	return u, uInv
}
