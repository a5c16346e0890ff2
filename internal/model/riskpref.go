package model

// RiskAttitude classifies the curvature of u(w) = w^gamma.
type RiskAttitude string

const (
	RiskAverse     RiskAttitude = "AVERSE"
	RiskNeutral    RiskAttitude = "NEUTRAL"
	RiskPreferring RiskAttitude = "PREFERRING"
)

// GambleParameters is a two-outcome lottery: Outcome1 with probability Prob,
// Outcome2 otherwise, evaluated under the exponent Gamma.
type GambleParameters struct {
	Prob     float64
	Outcome1 float64
	Outcome2 float64
	Gamma    float64
}

// GambleEvaluation reports the gamble's value to the agent. RiskPremium is
// E(w) - CE: positive for risk-averse agents, negative for risk-loving ones.
type GambleEvaluation struct {
	ExpectedValue       float64
	ExpectedUtility     float64
	CertaintyEquivalent float64
	RiskPremium         float64
	Attitude            RiskAttitude
}
