package recorder

import "EconLab/internal/model"

// ContractRun holds everything worth keeping from one contract-design run.
type ContractRun struct {
	Params          model.ContractParameters
	Proposed        model.Contract
	Effort          model.EffortChoice
	Accepted        bool
	AgentIncome     float64
	PrincipalProfit float64
	CounterOffer    *model.Contract // nil when none was needed or none exists
}

// LemonRun holds one lemon-market simulation with its full period history.
type LemonRun struct {
	Params  model.MarketParameters
	Outcome model.MarketOutcome
	Periods []model.PeriodRecord
}

// InsuranceRun holds one moral-hazard decision.
type InsuranceRun struct {
	Params   model.MoralHazardParameters
	Decision model.Decision
}

// PolicyMapRun holds one (gamma, delta) sweep. Only summary figures are
// persisted; the full grid stays in memory for the presentation layer.
type PolicyMapRun struct {
	Params model.MoralHazardParameters
	Grid   *model.PolicyGrid
}

// SignalingRun holds one separating-equilibrium computation.
type SignalingRun struct {
	Params     model.SignalingParameters
	Thresholds model.SignalingThresholds
}

// Recorder persists run results for later analysis or dashboarding.
type Recorder interface {
	RecordContract(runID string, run *ContractRun) error
	RecordLemon(runID string, run *LemonRun) error
	RecordInsurance(runID string, run *InsuranceRun) error
	RecordPolicyMap(runID string, run *PolicyMapRun) error
	RecordSignaling(runID string, run *SignalingRun) error
	Close() error
}
