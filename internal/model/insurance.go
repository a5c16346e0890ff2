package model

// MoralHazardParameters describes the theft-insurance decision problem.
// DeviceTheftProb must be below BaseTheftProb for installing the device to
// ever be rational. RiskAversionGamma and MoralHazardDelta are the baseline
// values for a single decision; the policy map sweeps them instead.
type MoralHazardParameters struct {
	InitialWealth     float64
	LossValue         float64
	BaseTheftProb     float64
	DeviceTheftProb   float64
	DeviceCost        float64
	MoralHazardDelta  float64
	RiskAversionGamma float64
}

// StrategyOutcome classifies the agent's optimal insure/install combination.
type StrategyOutcome int

const (
	NoInsureNoDevice StrategyOutcome = iota
	NoInsureDevice
	InsureDevice
	InsureNoDevice // the moral-hazard case: covered, so no precaution
)

func (s StrategyOutcome) String() string {
	switch s {
	case NoInsureNoDevice:
		return "NO_INSURE_NO_DEVICE"
	case NoInsureDevice:
		return "NO_INSURE_DEVICE"
	case InsureDevice:
		return "INSURE_DEVICE"
	case InsureNoDevice:
		return "INSURE_NO_DEVICE"
	default:
		return "UNKNOWN"
	}
}

// Decision is the full result of one strategy evaluation.
type Decision struct {
	Outcome       StrategyOutcome
	Insured       bool
	InstallDevice bool
	Premium       float64
	// UtilityUninsured is the best attainable expected utility without
	// insurance; UtilityInsured the certain utility under full insurance.
	UtilityUninsured float64
	UtilityInsured   float64
	// ExtraExpectedPayout is the insurer's moral-hazard cost: expected payout
	// above the fair-premium assumption. Zero when uninsured.
	ExtraExpectedPayout float64
	Gamma               float64
	Delta               float64
}

// SweepRange is a closed interval swept by the policy map.
type SweepRange struct {
	Min float64
	Max float64
}

// PolicyGrid holds a policy-map sweep, row-major: Outcomes[i][j] is the
// decision at (Gammas[i], Deltas[j]).
type PolicyGrid struct {
	Gammas       []float64
	Deltas       []float64
	Outcomes     [][]StrategyOutcome
	ExtraPayouts [][]float64
}

// DemoOutcome is one random realization of a prior insurance decision.
type DemoOutcome struct {
	TheftProb   float64
	Theft       bool
	FinalWealth float64
}
