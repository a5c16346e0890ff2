package report

import (
	"fmt"
	"strings"

	"EconLab/internal/model"
	"EconLab/internal/recorder"
)

// FormatContract renders a contract-design run as a report block.
func FormatContract(run *recorder.ContractRun) string {
	var b strings.Builder
	p := run.Params

	b.WriteString("== Principal-agent contract ==\n")
	b.WriteString(fmt.Sprintf("revenues: %.2f / %.2f  probs: %.2f / %.2f  costs: %.2f / %.2f  U0: %.2f\n",
		p.RevenueHigh, p.RevenueLow, p.ProbHigh, p.ProbLow, p.CostHigh, p.CostLow, p.ReservationUtility))
	b.WriteString(fmt.Sprintf("proposed wages: w_high=%.2f  w_low=%.2f\n",
		run.Proposed.WageHigh, run.Proposed.WageLow))
	b.WriteString(fmt.Sprintf("agent best response: %s (expected income %.2f)\n", run.Effort, run.AgentIncome))
	b.WriteString(fmt.Sprintf("principal expected profit: %.2f\n", run.PrincipalProfit))
	if run.Accepted {
		b.WriteString("agent accepts the contract\n")
	} else if run.CounterOffer != nil {
		b.WriteString(fmt.Sprintf("agent rejects; counter-offer: w_high=%.2f  w_low=%.2f\n",
			run.CounterOffer.WageHigh, run.CounterOffer.WageLow))
	} else {
		b.WriteString("agent rejects; no feasible counter-offer (total surplus <= 0)\n")
	}
	return b.String()
}

// FormatLemon renders a lemon-market run, sampling every fifth period the
// way the classroom log does.
func FormatLemon(run *recorder.LemonRun) string {
	var b strings.Builder
	p := run.Params

	b.WriteString("== Lemon market ==\n")
	b.WriteString(fmt.Sprintf("cars: %d  q0: %.2f  values: %.0f / %.0f  beta: %.2f  gamma: %.2f\n",
		p.TotalCars, p.InitialHighFraction, p.ValueHigh, p.ValueLow, p.TrustSpeed, p.ExitSensitivity))

	for _, rec := range run.Periods {
		if rec.Period%5 == 0 || rec.HighCount == 0 {
			b.WriteString(fmt.Sprintf("period %02d: price=%.1f  quality=%.1f%%  trust=%.2f\n",
				rec.Period, rec.Price, rec.QualityFraction*100, rec.Trust))
		}
	}

	if n := len(run.Periods); n > 0 {
		last := run.Periods[n-1]
		switch run.Outcome {
		case model.MarketCollapsed:
			b.WriteString(fmt.Sprintf("market collapsed after %d periods: only lemons remain\n", n))
		default:
			b.WriteString(fmt.Sprintf("market survived %d periods: %d high-quality sellers left (%.1f%%)\n",
				n, last.HighCount, last.QualityFraction*100))
		}
	}
	return b.String()
}

// FormatInsurance renders a moral-hazard decision.
func FormatInsurance(run *recorder.InsuranceRun) string {
	var b strings.Builder
	d := run.Decision

	b.WriteString("== Insurance moral hazard ==\n")
	b.WriteString(fmt.Sprintf("gamma: %.2f  delta: %.2f  fair premium: %.2f\n", d.Gamma, d.Delta, d.Premium))
	b.WriteString(fmt.Sprintf("optimal strategy: %s\n", d.Outcome))
	if d.Insured {
		b.WriteString(fmt.Sprintf("insured utility %.4f beats best uninsured %.4f\n",
			d.UtilityInsured, d.UtilityUninsured))
		if !d.InstallDevice {
			b.WriteString("no device installed once covered: the moral-hazard case\n")
		}
		b.WriteString(fmt.Sprintf("insurer's extra expected payout: %.2f\n", d.ExtraExpectedPayout))
	} else {
		b.WriteString(fmt.Sprintf("stays uninsured: certain premium loss exceeds the risk (EU %.4f vs %.4f)\n",
			d.UtilityUninsured, d.UtilityInsured))
	}
	return b.String()
}

// FormatPolicyMap summarizes a (gamma, delta) sweep: how much of the grid
// lands in each strategy region and where the insurer's exposure peaks.
func FormatPolicyMap(run *recorder.PolicyMapRun) string {
	g := run.Grid
	counts := map[model.StrategyOutcome]int{}
	total := 0
	maxExtra := 0.0
	for i := range g.Outcomes {
		for j := range g.Outcomes[i] {
			counts[g.Outcomes[i][j]]++
			total++
			if g.ExtraPayouts[i][j] > maxExtra {
				maxExtra = g.ExtraPayouts[i][j]
			}
		}
	}

	var b strings.Builder
	b.WriteString("== Policy map ==\n")
	b.WriteString(fmt.Sprintf("grid: %dx%d over gamma [%.2f, %.2f] x delta [%.2f, %.2f]\n",
		len(g.Gammas), len(g.Deltas), g.Gammas[0], g.Gammas[len(g.Gammas)-1],
		g.Deltas[0], g.Deltas[len(g.Deltas)-1]))
	for _, outcome := range []model.StrategyOutcome{
		model.NoInsureNoDevice, model.NoInsureDevice, model.InsureDevice, model.InsureNoDevice,
	} {
		b.WriteString(fmt.Sprintf("  %-22s %5.1f%%\n", outcome.String(),
			float64(counts[outcome])/float64(total)*100))
	}
	b.WriteString(fmt.Sprintf("max extra expected payout: %.2f\n", maxExtra))
	return b.String()
}

// FormatSignaling renders a separating-equilibrium computation.
func FormatSignaling(run *recorder.SignalingRun) string {
	var b strings.Builder
	th := run.Thresholds

	b.WriteString("== Education signaling ==\n")
	b.WriteString(fmt.Sprintf("wage premium: %.3f  thresholds: e_low=%.3f  e_high=%.3f\n",
		run.Params.WageHigh-run.Params.WageLow, th.LowBound, th.HighBound))
	if th.Separating {
		b.WriteString(fmt.Sprintf("separating equilibrium on (%.3f, %.3f); recommended signal e*=%.3f\n",
			th.LowBound, th.HighBound, th.RecommendedSignal))
	} else {
		b.WriteString("no separating equilibrium: types cannot be told apart by education\n")
	}
	return b.String()
}

// FormatGamble renders a risk-preference evaluation.
func FormatGamble(p model.GambleParameters, ev model.GambleEvaluation) string {
	var b strings.Builder
	b.WriteString("== Risk preference ==\n")
	b.WriteString(fmt.Sprintf("gamble: %.0f with p=%.2f, else %.0f  gamma: %.2f (%s)\n",
		p.Outcome1, p.Prob, p.Outcome2, p.Gamma, ev.Attitude))
	b.WriteString(fmt.Sprintf("E(w)=%.2f  CE=%.2f  risk premium=%.2f\n",
		ev.ExpectedValue, ev.CertaintyEquivalent, ev.RiskPremium))
	return b.String()
}
