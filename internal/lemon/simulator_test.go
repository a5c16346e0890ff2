package lemon

import (
	"math"
	"testing"

	"EconLab/internal/model"
)

func textbookParams() model.MarketParameters {
	return model.MarketParameters{
		TotalCars:           100,
		InitialHighFraction: 0.5,
		ValueHigh:           2400,
		ValueLow:            1200,
		TrustSpeed:          0.3,
		ExitSensitivity:     0.2,
		MaxPeriods:          30,
	}
}

func TestNewSimulator_InitialComposition(t *testing.T) {
	sim := NewSimulator(textbookParams())
	if sim.HighCount() != 50 || sim.LowCount() != 50 {
		t.Fatalf("expected 50/50 split, got %d/%d", sim.HighCount(), sim.LowCount())
	}
	if sim.BuyerTrust() != 0.5 {
		t.Fatalf("expected initial trust 0.5, got %.4f", sim.BuyerTrust())
	}

	p := textbookParams()
	p.TotalCars = 101
	sim = NewSimulator(p)
	if sim.HighCount()+sim.LowCount() != 101 {
		t.Fatalf("counts must sum to total cars, got %d", sim.HighCount()+sim.LowCount())
	}
}

func TestStep_UpdateOrder(t *testing.T) {
	sim := NewSimulator(textbookParams())
	rec := sim.Step()

	// Price forms from the initial trust, before anything else moves.
	if math.Abs(rec.Price-1800) > 1e-9 {
		t.Errorf("first-period price should be 0.5*2400 + 0.5*1200 = 1800, got %.4f", rec.Price)
	}
	// Quality is observed before sellers exit.
	if math.Abs(rec.QualityFraction-0.5) > 1e-9 {
		t.Errorf("first-period quality should be 0.5, got %.4f", rec.QualityFraction)
	}
	// Exits have already happened by the time the record lands.
	if rec.HighCount >= 50 {
		t.Errorf("underpriced high-quality sellers must exit: high count still %d", rec.HighCount)
	}
	if rec.LowCount != 50 {
		t.Errorf("low-quality sellers never exit, got %d", rec.LowCount)
	}
}

func TestRun_AdverseSelectionSpiral(t *testing.T) {
	sim := NewSimulator(textbookParams())
	periods, outcome := sim.Run()

	if len(periods) == 0 {
		t.Fatal("expected at least one period")
	}

	// The average price sits below the high-quality value throughout, so
	// high counts must strictly decrease from period 1 until depletion.
	prevHigh := 50
	for _, rec := range periods {
		if rec.HighCount < 0 || rec.LowCount < 0 {
			t.Fatalf("period %d: negative count", rec.Period)
		}
		if rec.Trust < 0 || rec.Trust > 1 {
			t.Fatalf("period %d: trust %.4f outside [0,1]", rec.Period, rec.Trust)
		}
		if rec.HighCount > prevHigh {
			t.Fatalf("period %d: high count rose from %d to %d", rec.Period, prevHigh, rec.HighCount)
		}
		if prevHigh > 0 && rec.HighCount >= prevHigh {
			t.Fatalf("period %d: high count must strictly decrease while sellers remain", rec.Period)
		}
		prevHigh = rec.HighCount
	}

	last := periods[len(periods)-1]
	if outcome == model.MarketCollapsed && last.HighCount != 0 {
		t.Errorf("collapsed outcome with %d high-quality sellers left", last.HighCount)
	}
	if outcome == model.MarketSurvived && len(periods) != 30 {
		t.Errorf("survived outcome after %d periods, expected 30", len(periods))
	}
}

func TestRun_StopsAtMaxPeriods(t *testing.T) {
	p := textbookParams()
	p.ExitSensitivity = 0.001 // nearly no exits, market should outlive the horizon
	p.TotalCars = 10000
	sim := NewSimulator(p)
	periods, outcome := sim.Run()

	if outcome != model.MarketSurvived {
		t.Fatalf("expected survival with tiny exit sensitivity, got %s", outcome)
	}
	if len(periods) != p.MaxPeriods {
		t.Fatalf("expected %d periods, got %d", p.MaxPeriods, len(periods))
	}
}

func TestStep_TrustClamped(t *testing.T) {
	p := textbookParams()
	p.TrustSpeed = 1.0 // full adjustment each period
	sim := NewSimulator(p)
	for i := 0; i < p.MaxPeriods; i++ {
		sim.Step()
		if trust := sim.BuyerTrust(); trust < 0 || trust > 1 {
			t.Fatalf("step %d: trust %.4f outside [0,1]", i+1, trust)
		}
	}
}
