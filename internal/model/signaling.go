package model

// SignalingParameters describes the two-type education signaling game.
// WageHigh/WageLow are the wages paid to workers read as high/low type;
// UnitCostLow/UnitCostHigh are the per-unit education costs of the low and
// high ability types. Single crossing requires UnitCostLow > UnitCostHigh.
type SignalingParameters struct {
	WageLow      float64
	WageHigh     float64
	UnitCostLow  float64
	UnitCostHigh float64
	MaxEducation float64
}

// SignalingThresholds bounds the separating-equilibrium education interval.
// RecommendedSignal is only meaningful when Separating is true.
type SignalingThresholds struct {
	LowBound          float64 // above this the low type stops mimicking
	HighBound         float64 // below this signaling still pays for the high type
	Separating        bool
	RecommendedSignal float64
}
