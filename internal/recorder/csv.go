package recorder

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// CSVRecorder writes lemon-market histories as one CSV file per run and
// appends a one-line summary per run of every other module to runs.csv.
// It is the file-based alternative when no SQLite path is configured.
type CSVRecorder struct {
	dir string
	mu  sync.Mutex
}

// NewCSVRecorder ensures the output directory exists.
func NewCSVRecorder(dir string) (*CSVRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create csv dir: %w", err)
	}
	log.Printf("[INFO] csv recorder writing to: %s", dir)
	return &CSVRecorder{dir: dir}, nil
}

func (r *CSVRecorder) RecordLemon(runID string, run *LemonRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.dir, fmt.Sprintf("lemon_%s.csv", runID))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create lemon csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"t", "high", "low", "q", "tau", "price"}); err != nil {
		return err
	}
	for _, rec := range run.Periods {
		row := []string{
			strconv.Itoa(rec.Period),
			strconv.Itoa(rec.HighCount),
			strconv.Itoa(rec.LowCount),
			strconv.FormatFloat(rec.QualityFraction, 'f', 4, 64),
			strconv.FormatFloat(rec.Trust, 'f', 4, 64),
			strconv.FormatFloat(rec.Price, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (r *CSVRecorder) RecordContract(runID string, run *ContractRun) error {
	return r.appendSummary(runID, "contract", fmt.Sprintf(
		"wage_high=%.2f wage_low=%.2f effort=%s accepted=%v",
		run.Proposed.WageHigh, run.Proposed.WageLow, run.Effort, run.Accepted))
}

func (r *CSVRecorder) RecordInsurance(runID string, run *InsuranceRun) error {
	return r.appendSummary(runID, "insurance", fmt.Sprintf(
		"outcome=%s extra_payout=%.2f", run.Decision.Outcome, run.Decision.ExtraExpectedPayout))
}

func (r *CSVRecorder) RecordPolicyMap(runID string, run *PolicyMapRun) error {
	return r.appendSummary(runID, "policy_map", fmt.Sprintf(
		"resolution=%d", len(run.Grid.Gammas)))
}

func (r *CSVRecorder) RecordSignaling(runID string, run *SignalingRun) error {
	return r.appendSummary(runID, "signaling", fmt.Sprintf(
		"low=%.4f high=%.4f separating=%v", run.Thresholds.LowBound,
		run.Thresholds.HighBound, run.Thresholds.Separating))
}

func (r *CSVRecorder) appendSummary(runID, module, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.dir, "runs.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open runs csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		time.Now().Format(time.RFC3339), runID, module, summary,
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (r *CSVRecorder) Close() error { return nil }
