package scheduler

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"EconLab/internal/config"
	"EconLab/internal/contract"
	"EconLab/internal/insurance"
	"EconLab/internal/lemon"
	"EconLab/internal/model"
	"EconLab/internal/recorder"
	"EconLab/internal/report"
	"EconLab/internal/riskpref"
	"EconLab/internal/session"
	"EconLab/internal/signaling"
)

// Scheduler runs the configured scenarios, either once on demand or
// repeatedly on a cron schedule (the demo feed a dashboard reads from).
type Scheduler struct {
	Cron     *cron.Cron
	Cfg      *config.Config
	Recorder recorder.Recorder
	Session  *session.Manager
	Ctx      context.Context

	rng *rand.Rand
}

// NewScheduler creates a new Scheduler. The feed RNG is seeded from config
// so recorded feed runs are reproducible.
func NewScheduler(ctx context.Context, cfg *config.Config, rec recorder.Recorder, sess *session.Manager) *Scheduler {
	seed := cfg.Feed.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Cfg:      cfg,
		Recorder: rec,
		Session:  sess,
		Ctx:      ctx,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// RegisterFeed registers the cron-driven lemon demo feed.
func (s *Scheduler) RegisterFeed() error {
	if _, err := s.Cron.AddFunc(s.Cfg.Feed.Cron, s.feedTask); err != nil {
		return fmt.Errorf("register feed task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAllNow executes every enabled scenario once.
func (s *Scheduler) RunAllNow() {
	if s.Cfg.Contract.Enabled {
		s.contractTask()
	}
	if s.Cfg.Lemon.Enabled {
		s.lemonTask(s.Cfg.Lemon.InitialHighFrac)
	}
	if s.Cfg.Insurance.Enabled {
		s.insuranceTask()
	}
	if s.Cfg.Signaling.Enabled {
		s.signalingTask()
	}
	if s.Cfg.RiskPref.Enabled {
		s.riskprefTask()
	}
}

// feedTask re-runs the lemon scenario with a jittered starting composition,
// so successive feed rows trace out different collapse paths.
func (s *Scheduler) feedTask() {
	select {
	case <-s.Ctx.Done():
		return
	default:
	}

	frac := s.Cfg.Lemon.InitialHighFrac + (s.rng.Float64()-0.5)*0.2
	if frac < 0.05 {
		frac = 0.05
	}
	if frac > 0.95 {
		frac = 0.95
	}
	log.Printf("[INFO] feed: lemon run with initial high fraction %.2f", frac)
	s.lemonTask(frac)
}

func (s *Scheduler) contractTask() {
	c := s.Cfg.Contract
	params := model.ContractParameters{
		RevenueHigh:        c.RevenueHigh,
		RevenueLow:         c.RevenueLow,
		ProbHigh:           c.ProbHigh,
		ProbLow:            c.ProbLow,
		CostHigh:           c.CostHigh,
		CostLow:            c.CostLow,
		ReservationUtility: c.ReservationUtility,
	}
	if c.SampleCosts {
		seed := c.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		costs := contract.SampleAgentCosts(rand.New(rand.NewSource(seed)), c.RevenueHigh, c.RevenueLow)
		params.CostHigh, params.CostLow = costs.CostHigh, costs.CostLow
	}

	proposed := contract.ProposeOptimalContract(params)
	effort := contract.BestResponseEffort(proposed.WageHigh, proposed.WageLow,
		params.CostHigh, params.CostLow, params.ProbHigh, params.ProbLow)
	eval := contract.EvaluateContract(proposed, params)

	run := &recorder.ContractRun{
		Params:          params,
		Proposed:        proposed,
		Effort:          effort,
		Accepted:        eval.Accept,
		AgentIncome:     contract.AgentExpectedIncome(proposed, params, effort),
		PrincipalProfit: contract.PrincipalExpectedProfit(proposed, params, effort),
	}
	if !eval.Accept {
		run.CounterOffer = contract.CounterOffer(params, 0)
	}

	runID := uuid.NewString()
	text := report.FormatContract(run)
	log.Printf("[INFO] contract run %s:\n%s", runID, text)
	if err := s.Recorder.RecordContract(runID, run); err != nil {
		log.Printf("[ERROR] record contract run: %v", err)
	}
	s.Session.Append(runID, "contract", text)
}

func (s *Scheduler) lemonTask(initialHighFrac float64) {
	c := s.Cfg.Lemon
	params := model.MarketParameters{
		TotalCars:           c.TotalCars,
		InitialHighFraction: initialHighFrac,
		ValueHigh:           c.ValueHigh,
		ValueLow:            c.ValueLow,
		TrustSpeed:          c.TrustSpeed,
		ExitSensitivity:     c.ExitSensitivity,
		MaxPeriods:          c.MaxPeriods,
	}

	sim := lemon.NewSimulator(params)
	periods, outcome := sim.Run()
	run := &recorder.LemonRun{Params: params, Outcome: outcome, Periods: periods}

	runID := uuid.NewString()
	text := report.FormatLemon(run)
	log.Printf("[INFO] lemon run %s:\n%s", runID, text)
	if err := s.Recorder.RecordLemon(runID, run); err != nil {
		log.Printf("[ERROR] record lemon run: %v", err)
	}
	s.Session.Append(runID, "lemon", text)
}

func (s *Scheduler) insuranceTask() {
	c := s.Cfg.Insurance
	params := model.MoralHazardParameters{
		InitialWealth:     c.InitialWealth,
		LossValue:         c.LossValue,
		BaseTheftProb:     c.BaseTheftProb,
		DeviceTheftProb:   c.DeviceTheftProb,
		DeviceCost:        c.DeviceCost,
		MoralHazardDelta:  c.Delta,
		RiskAversionGamma: c.Gamma,
	}

	decision := insurance.Decide(c.Gamma, c.Delta, params)
	run := &recorder.InsuranceRun{Params: params, Decision: decision}

	runID := uuid.NewString()
	text := report.FormatInsurance(run)
	log.Printf("[INFO] insurance run %s:\n%s", runID, text)
	if err := s.Recorder.RecordInsurance(runID, run); err != nil {
		log.Printf("[ERROR] record insurance run: %v", err)
	}
	s.Session.Append(runID, "insurance", text)

	if c.Sweep.Enabled {
		grid := insurance.PolicyMap(
			model.SweepRange{Min: c.Sweep.GammaMin, Max: c.Sweep.GammaMax},
			model.SweepRange{Min: c.Sweep.DeltaMin, Max: c.Sweep.DeltaMax},
			c.Sweep.Resolution, params)
		mapRun := &recorder.PolicyMapRun{Params: params, Grid: grid}

		mapID := uuid.NewString()
		mapText := report.FormatPolicyMap(mapRun)
		log.Printf("[INFO] policy map %s:\n%s", mapID, mapText)
		if err := s.Recorder.RecordPolicyMap(mapID, mapRun); err != nil {
			log.Printf("[ERROR] record policy map: %v", err)
		}
		s.Session.Append(mapID, "policy_map", mapText)
	}
}

func (s *Scheduler) signalingTask() {
	c := s.Cfg.Signaling
	params := model.SignalingParameters{
		WageLow:      c.WageLow,
		WageHigh:     c.WageHigh,
		UnitCostLow:  c.UnitCostLow,
		UnitCostHigh: c.UnitCostHigh,
		MaxEducation: c.MaxEducation,
	}

	thresholds, err := signaling.ComputeThresholds(params)
	if err != nil {
		log.Printf("[WARN] signaling scenario skipped: %v", err)
		return
	}
	run := &recorder.SignalingRun{Params: params, Thresholds: thresholds}

	runID := uuid.NewString()
	text := report.FormatSignaling(run)
	log.Printf("[INFO] signaling run %s:\n%s", runID, text)
	if err := s.Recorder.RecordSignaling(runID, run); err != nil {
		log.Printf("[ERROR] record signaling run: %v", err)
	}
	s.Session.Append(runID, "signaling", text)
}

func (s *Scheduler) riskprefTask() {
	c := s.Cfg.RiskPref
	params := model.GambleParameters{
		Prob:     c.Prob,
		Outcome1: c.Outcome1,
		Outcome2: c.Outcome2,
		Gamma:    c.Gamma,
	}
	eval := riskpref.Evaluate(params)

	runID := uuid.NewString()
	text := report.FormatGamble(params, eval)
	log.Printf("[INFO] risk preference run %s:\n%s", runID, text)
	s.Session.Append(runID, "risk_preference", text)
}
