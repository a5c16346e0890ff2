package riskpref

import (
	"math"
	"testing"

	"EconLab/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		gamma float64
		want  model.RiskAttitude
	}{
		{0.5, model.RiskAverse},
		{0.9995, model.RiskNeutral},
		{1.0, model.RiskNeutral},
		{1.0005, model.RiskNeutral},
		{2.0, model.RiskPreferring},
	}
	for _, tt := range tests {
		if got := Classify(tt.gamma); got != tt.want {
			t.Errorf("Classify(%.4f) = %s, want %s", tt.gamma, got, tt.want)
		}
	}
}

func TestEvaluate_AverseAgentDiscountsTheGamble(t *testing.T) {
	ev := Evaluate(model.GambleParameters{Prob: 0.5, Outcome1: 150, Outcome2: 50, Gamma: 0.5})

	if math.Abs(ev.ExpectedValue-100) > 1e-9 {
		t.Fatalf("expected E(w)=100, got %.4f", ev.ExpectedValue)
	}
	if ev.CertaintyEquivalent >= ev.ExpectedValue {
		t.Errorf("risk-averse CE %.4f should sit below E(w) %.4f", ev.CertaintyEquivalent, ev.ExpectedValue)
	}
	if ev.RiskPremium <= 0 {
		t.Errorf("risk-averse premium should be positive, got %.4f", ev.RiskPremium)
	}
	if ev.Attitude != model.RiskAverse {
		t.Errorf("expected AVERSE, got %s", ev.Attitude)
	}
}

func TestEvaluate_NeutralAgentIsIndifferent(t *testing.T) {
	ev := Evaluate(model.GambleParameters{Prob: 0.5, Outcome1: 150, Outcome2: 50, Gamma: 1.0})
	if math.Abs(ev.CertaintyEquivalent-ev.ExpectedValue) > 1e-9 {
		t.Errorf("neutral CE should equal E(w): %.4f vs %.4f", ev.CertaintyEquivalent, ev.ExpectedValue)
	}
	if math.Abs(ev.RiskPremium) > 1e-9 {
		t.Errorf("neutral premium should be zero, got %.4f", ev.RiskPremium)
	}
}

func TestEvaluate_PreferringAgentPaysForRisk(t *testing.T) {
	ev := Evaluate(model.GambleParameters{Prob: 0.5, Outcome1: 150, Outcome2: 50, Gamma: 2.0})
	if ev.CertaintyEquivalent <= ev.ExpectedValue {
		t.Errorf("risk-preferring CE %.4f should exceed E(w) %.4f", ev.CertaintyEquivalent, ev.ExpectedValue)
	}
	if ev.RiskPremium >= 0 {
		t.Errorf("risk-preferring premium should be negative, got %.4f", ev.RiskPremium)
	}
}
