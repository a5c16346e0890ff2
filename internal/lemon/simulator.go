package lemon

import (
	"log"
	"math"

	"EconLab/internal/model"
)

// Simulator is a discrete-time Akerlof lemon market with adaptive buyer
// trust. Each period the market prices cars off current trust, underpriced
// high-quality sellers exit, and buyers move trust toward the quality share
// they observed. The positive feedback (low price -> good sellers leave ->
// lower observed quality -> lower trust -> lower price) can collapse the
// market entirely.
//
// A Simulator is single-owner state: run it to completion on one goroutine,
// then read the history.
type Simulator struct {
	params  model.MarketParameters
	high    int
	low     int
	trust   float64
	history []model.PeriodRecord
}

// NewSimulator seeds the market from the configured size and initial
// high-quality fraction; buyer trust starts at that same fraction.
func NewSimulator(p model.MarketParameters) *Simulator {
	high := int(math.Round(float64(p.TotalCars) * p.InitialHighFraction))
	return &Simulator{
		params: p,
		high:   high,
		low:    p.TotalCars - high,
		trust:  p.InitialHighFraction,
	}
}

// Step advances the market one period and returns the recorded row.
// The update order is load-bearing: price forms from current trust, exits
// respond to that price, and only then does trust adjust.
func (s *Simulator) Step() model.PeriodRecord {
	total := s.high + s.low
	if total < 1 {
		total = 1
	}
	quality := float64(s.high) / float64(total)
	price := s.trust*s.params.ValueHigh + (1-s.trust)*s.params.ValueLow

	// High-quality sellers exit in proportion to how far the market price
	// sits below their reservation value. At least one leaves per period,
	// never more than remain.
	if price < s.params.ValueHigh && s.high > 0 {
		exitRatio := s.params.ExitSensitivity * (1 - price/s.params.ValueHigh)
		exits := int(math.Round(float64(s.high) * exitRatio))
		if exits < 1 {
			exits = 1
		}
		if exits > s.high {
			exits = s.high
		}
		s.high -= exits
	}

	s.trust += s.params.TrustSpeed * (quality - s.trust)
	if s.trust < 0 {
		s.trust = 0
	}
	if s.trust > 1 {
		s.trust = 1
	}

	rec := model.PeriodRecord{
		Period:          len(s.history) + 1,
		HighCount:       s.high,
		LowCount:        s.low,
		QualityFraction: quality,
		Trust:           s.trust,
		Price:           price,
	}
	s.history = append(s.history, rec)
	return rec
}

// Run steps the market until every high-quality seller has exited or
// MaxPeriods elapse, and returns the full period history.
func (s *Simulator) Run() ([]model.PeriodRecord, model.MarketOutcome) {
	for t := 0; t < s.params.MaxPeriods; t++ {
		rec := s.Step()
		if rec.HighCount == 0 {
			log.Printf("[INFO] lemon market collapsed at period %d: all high-quality sellers exited", rec.Period)
			return s.history, model.MarketCollapsed
		}
	}
	return s.history, model.MarketSurvived
}

// History returns the periods recorded so far, in order.
func (s *Simulator) History() []model.PeriodRecord { return s.history }

// BuyerTrust returns the current trust level.
func (s *Simulator) BuyerTrust() float64 { return s.trust }

// HighCount returns the remaining high-quality sellers.
func (s *Simulator) HighCount() int { return s.high }

// LowCount returns the remaining low-quality sellers.
func (s *Simulator) LowCount() int { return s.low }
