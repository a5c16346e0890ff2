package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"EconLab/internal/model"
)

// SQLiteRecorder persists run results to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so a dashboard can read while the demo feed writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS contract_runs (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            TEXT NOT NULL,
			timestamp         INTEGER NOT NULL,
			revenue_high      REAL,
			revenue_low       REAL,
			prob_high         REAL,
			prob_low          REAL,
			cost_high         REAL,
			cost_low          REAL,
			reservation       REAL,
			wage_high         REAL,
			wage_low          REAL,
			effort            TEXT,
			accepted          INTEGER,
			agent_income      REAL,
			principal_profit  REAL,
			counter_wage_high REAL,
			counter_wage_low  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contract_ts ON contract_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS lemon_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          TEXT NOT NULL,
			timestamp       INTEGER NOT NULL,
			total_cars      INTEGER,
			initial_high    REAL,
			value_high      REAL,
			value_low       REAL,
			trust_speed     REAL,
			exit_sensitivity REAL,
			max_periods     INTEGER,
			outcome         TEXT,
			periods_run     INTEGER,
			final_high      INTEGER,
			final_trust     REAL,
			final_price     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lemon_ts ON lemon_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS lemon_periods (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			period     INTEGER NOT NULL,
			high_count INTEGER,
			low_count  INTEGER,
			quality    REAL,
			trust      REAL,
			price      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lemon_periods_run ON lemon_periods(run_id)`,

		`CREATE TABLE IF NOT EXISTS insurance_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			gamma        REAL,
			delta        REAL,
			outcome      TEXT,
			insured      INTEGER,
			install      INTEGER,
			premium      REAL,
			extra_payout REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_insurance_ts ON insurance_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS policy_maps (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			resolution       INTEGER,
			gamma_min        REAL,
			gamma_max        REAL,
			delta_min        REAL,
			delta_max        REAL,
			hazard_cells     INTEGER,
			max_extra_payout REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_policy_ts ON policy_maps(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signaling_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			timestamp      INTEGER NOT NULL,
			wage_low       REAL,
			wage_high      REAL,
			unit_cost_low  REAL,
			unit_cost_high REAL,
			low_bound      REAL,
			high_bound     REAL,
			separating     INTEGER,
			recommended    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signaling_ts ON signaling_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordContract(runID string, run *ContractRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var counterHigh, counterLow sql.NullFloat64
	if run.CounterOffer != nil {
		counterHigh = sql.NullFloat64{Float64: run.CounterOffer.WageHigh, Valid: true}
		counterLow = sql.NullFloat64{Float64: run.CounterOffer.WageLow, Valid: true}
	}

	p := run.Params
	_, err := r.db.Exec(`INSERT INTO contract_runs
		(run_id, timestamp, revenue_high, revenue_low, prob_high, prob_low,
		 cost_high, cost_low, reservation, wage_high, wage_low, effort,
		 accepted, agent_income, principal_profit, counter_wage_high, counter_wage_low)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, time.Now().Unix(), p.RevenueHigh, p.RevenueLow, p.ProbHigh, p.ProbLow,
		p.CostHigh, p.CostLow, p.ReservationUtility,
		run.Proposed.WageHigh, run.Proposed.WageLow, string(run.Effort),
		run.Accepted, run.AgentIncome, run.PrincipalProfit, counterHigh, counterLow,
	)
	return err
}

func (r *SQLiteRecorder) RecordLemon(runID string, run *LemonRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	last := model.PeriodRecord{Trust: run.Params.InitialHighFraction}
	if n := len(run.Periods); n > 0 {
		last = run.Periods[n-1]
	}

	p := run.Params
	if _, err := tx.Exec(`INSERT INTO lemon_runs
		(run_id, timestamp, total_cars, initial_high, value_high, value_low,
		 trust_speed, exit_sensitivity, max_periods, outcome, periods_run,
		 final_high, final_trust, final_price)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, time.Now().Unix(), p.TotalCars, p.InitialHighFraction, p.ValueHigh, p.ValueLow,
		p.TrustSpeed, p.ExitSensitivity, p.MaxPeriods, string(run.Outcome), len(run.Periods),
		last.HighCount, last.Trust, last.Price,
	); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO lemon_periods
		(run_id, period, high_count, low_count, quality, trust, price)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, rec := range run.Periods {
		if _, err := stmt.Exec(runID, rec.Period, rec.HighCount, rec.LowCount,
			rec.QualityFraction, rec.Trust, rec.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) RecordInsurance(runID string, run *InsuranceRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := run.Decision
	_, err := r.db.Exec(`INSERT INTO insurance_runs
		(run_id, timestamp, gamma, delta, outcome, insured, install, premium, extra_payout)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		runID, time.Now().Unix(), d.Gamma, d.Delta, d.Outcome.String(),
		d.Insured, d.InstallDevice, d.Premium, d.ExtraExpectedPayout,
	)
	return err
}

func (r *SQLiteRecorder) RecordPolicyMap(runID string, run *PolicyMapRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := run.Grid
	hazardCells := 0
	maxExtra := 0.0
	for i := range g.Outcomes {
		for j := range g.Outcomes[i] {
			if g.Outcomes[i][j] == model.InsureNoDevice {
				hazardCells++
			}
			if g.ExtraPayouts[i][j] > maxExtra {
				maxExtra = g.ExtraPayouts[i][j]
			}
		}
	}

	_, err := r.db.Exec(`INSERT INTO policy_maps
		(run_id, timestamp, resolution, gamma_min, gamma_max, delta_min, delta_max,
		 hazard_cells, max_extra_payout)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		runID, time.Now().Unix(), len(g.Gammas),
		g.Gammas[0], g.Gammas[len(g.Gammas)-1],
		g.Deltas[0], g.Deltas[len(g.Deltas)-1],
		hazardCells, maxExtra,
	)
	return err
}

func (r *SQLiteRecorder) RecordSignaling(runID string, run *SignalingRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := run.Params
	th := run.Thresholds
	_, err := r.db.Exec(`INSERT INTO signaling_runs
		(run_id, timestamp, wage_low, wage_high, unit_cost_low, unit_cost_high,
		 low_bound, high_bound, separating, recommended)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		runID, time.Now().Unix(), p.WageLow, p.WageHigh, p.UnitCostLow, p.UnitCostHigh,
		th.LowBound, th.HighBound, th.Separating, th.RecommendedSignal,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
