package model

// MarketParameters configures a lemon-market simulation run.
type MarketParameters struct {
	TotalCars           int
	InitialHighFraction float64
	ValueHigh           float64
	ValueLow            float64
	TrustSpeed          float64 // buyer trust adjustment speed (beta)
	ExitSensitivity     float64 // seller exit sensitivity (gamma)
	MaxPeriods          int
}

// PeriodRecord is one period of simulated market history. Counts are the
// post-exit values; QualityFraction and Price reflect the start of the period.
type PeriodRecord struct {
	Period          int
	HighCount       int
	LowCount        int
	QualityFraction float64
	Trust           float64
	Price           float64
}

// MarketOutcome says how a simulation run ended.
type MarketOutcome string

const (
	// MarketCollapsed: every high-quality seller exited before MaxPeriods.
	MarketCollapsed MarketOutcome = "COLLAPSED"
	// MarketSurvived: MaxPeriods elapsed with high-quality sellers remaining.
	MarketSurvived MarketOutcome = "SURVIVED"
)
