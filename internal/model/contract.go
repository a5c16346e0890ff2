package model

// EffortChoice is the agent's best response to a wage schedule.
type EffortChoice string

const (
	ChooseEffort EffortChoice = "EFFORT"
	ChooseShirk  EffortChoice = "SHIRK"
)

// ContractParameters describes a binary-outcome principal-agent problem.
// ProbHigh is the success probability under effort, ProbLow under shirking;
// the incentive constraint only has a solution when ProbHigh > ProbLow.
type ContractParameters struct {
	RevenueHigh        float64
	RevenueLow         float64
	ProbHigh           float64
	ProbLow            float64
	CostHigh           float64 // disutility of effort
	CostLow            float64 // disutility of shirking
	ReservationUtility float64
}

// AgentCosts is a sampled effort/shirk cost pair for demo runs.
type AgentCosts struct {
	CostHigh float64
	CostLow  float64
}

// Contract is a two-outcome wage schedule: WageHigh paid on high revenue,
// WageLow on low revenue.
type Contract struct {
	WageHigh float64
	WageLow  float64
}

// ContractEvaluation is the agent's view of a proposed contract.
type ContractEvaluation struct {
	Accept        bool
	UtilityEffort float64
	UtilityShirk  float64
}
