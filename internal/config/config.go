package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioToggle enables or disables one economic module in a run.
type ScenarioToggle struct {
	Enabled bool `yaml:"enabled"`
}

// Config holds all scenario parameters and infrastructure settings.
type Config struct {
	Contract struct {
		ScenarioToggle     `yaml:",inline"`
		RevenueHigh        float64 `yaml:"revenue_high"`
		RevenueLow         float64 `yaml:"revenue_low"`
		ProbHigh           float64 `yaml:"prob_high"`
		ProbLow            float64 `yaml:"prob_low"`
		CostHigh           float64 `yaml:"cost_high"`
		CostLow            float64 `yaml:"cost_low"`
		ReservationUtility float64 `yaml:"reservation_utility"`
		SampleCosts        bool    `yaml:"sample_costs"` // draw demo costs instead of using cost_high/cost_low
		Seed               int64   `yaml:"seed"`
	} `yaml:"contract"`
	Lemon struct {
		ScenarioToggle  `yaml:",inline"`
		TotalCars       int     `yaml:"total_cars"`
		InitialHighFrac float64 `yaml:"initial_high_fraction"`
		ValueHigh       float64 `yaml:"value_high"`
		ValueLow        float64 `yaml:"value_low"`
		TrustSpeed      float64 `yaml:"trust_speed"`
		ExitSensitivity float64 `yaml:"exit_sensitivity"`
		MaxPeriods      int     `yaml:"max_periods"`
	} `yaml:"lemon"`
	Insurance struct {
		ScenarioToggle  `yaml:",inline"`
		InitialWealth   float64 `yaml:"initial_wealth"`
		LossValue       float64 `yaml:"loss_value"`
		BaseTheftProb   float64 `yaml:"base_theft_prob"`
		DeviceTheftProb float64 `yaml:"device_theft_prob"`
		DeviceCost      float64 `yaml:"device_cost"`
		Delta           float64 `yaml:"moral_hazard_delta"`
		Gamma           float64 `yaml:"risk_aversion_gamma"`
		Sweep           struct {
			Enabled    bool    `yaml:"enabled"`
			GammaMin   float64 `yaml:"gamma_min"`
			GammaMax   float64 `yaml:"gamma_max"`
			DeltaMin   float64 `yaml:"delta_min"`
			DeltaMax   float64 `yaml:"delta_max"`
			Resolution int     `yaml:"resolution"`
		} `yaml:"sweep"`
	} `yaml:"insurance"`
	Signaling struct {
		ScenarioToggle `yaml:",inline"`
		WageLow        float64 `yaml:"wage_low"`
		WageHigh       float64 `yaml:"wage_high"`
		UnitCostLow    float64 `yaml:"unit_cost_low"`
		UnitCostHigh   float64 `yaml:"unit_cost_high"`
		MaxEducation   float64 `yaml:"max_education"`
	} `yaml:"signaling"`
	RiskPref struct {
		ScenarioToggle `yaml:",inline"`
		Prob           float64 `yaml:"prob"`
		Outcome1       float64 `yaml:"outcome1"`
		Outcome2       float64 `yaml:"outcome2"`
		Gamma          float64 `yaml:"gamma"`
	} `yaml:"risk_preference"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Export struct {
		CSVDir string `yaml:"csv_dir"`
	} `yaml:"export"`
	Session struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"session"`
	Feed struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"`
		Seed    int64  `yaml:"seed"`
	} `yaml:"feed"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file yields the default scenario set.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else {
		// No file: run every module with its textbook defaults.
		cfg.Contract.Enabled = true
		cfg.Lemon.Enabled = true
		cfg.Insurance.Enabled = true
		cfg.Signaling.Enabled = true
		cfg.RiskPref.Enabled = true
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CSV_DIR"); v != "" {
		cfg.Export.CSVDir = v
	}
	if v := os.Getenv("SESSION_FILE"); v != "" {
		cfg.Session.StateFile = v
	}
	if v := os.Getenv("FEED_CRON"); v != "" {
		cfg.Feed.Cron = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero-valued parameters with the classroom defaults the
// modules ship with.
func (c *Config) applyDefaults() {
	if c.Contract.RevenueHigh == 0 {
		c.Contract.RevenueHigh = 1000
	}
	if c.Contract.RevenueLow == 0 {
		c.Contract.RevenueLow = 400
	}
	if c.Contract.ProbHigh == 0 {
		c.Contract.ProbHigh = 0.8
	}
	if c.Contract.ProbLow == 0 {
		c.Contract.ProbLow = 0.4
	}
	if c.Contract.CostHigh == 0 {
		c.Contract.CostHigh = 100
	}

	if c.Lemon.TotalCars == 0 {
		c.Lemon.TotalCars = 100
	}
	if c.Lemon.InitialHighFrac == 0 {
		c.Lemon.InitialHighFrac = 0.5
	}
	if c.Lemon.ValueHigh == 0 {
		c.Lemon.ValueHigh = 2400
	}
	if c.Lemon.ValueLow == 0 {
		c.Lemon.ValueLow = 1200
	}
	if c.Lemon.TrustSpeed == 0 {
		c.Lemon.TrustSpeed = 0.3
	}
	if c.Lemon.ExitSensitivity == 0 {
		c.Lemon.ExitSensitivity = 0.2
	}
	if c.Lemon.MaxPeriods == 0 {
		c.Lemon.MaxPeriods = 30
	}

	if c.Insurance.InitialWealth == 0 {
		c.Insurance.InitialWealth = 100000
	}
	if c.Insurance.LossValue == 0 {
		c.Insurance.LossValue = 20000
	}
	if c.Insurance.BaseTheftProb == 0 {
		c.Insurance.BaseTheftProb = 0.25
	}
	if c.Insurance.DeviceTheftProb == 0 {
		c.Insurance.DeviceTheftProb = 0.15
	}
	if c.Insurance.DeviceCost == 0 {
		c.Insurance.DeviceCost = 1950
	}
	if c.Insurance.Gamma == 0 {
		c.Insurance.Gamma = 1.0
	}
	if c.Insurance.Sweep.GammaMin == 0 && c.Insurance.Sweep.GammaMax == 0 {
		c.Insurance.Sweep.GammaMin = -1
		c.Insurance.Sweep.GammaMax = 3
	}
	if c.Insurance.Sweep.DeltaMax == 0 {
		c.Insurance.Sweep.DeltaMax = 1
	}
	if c.Insurance.Sweep.Resolution == 0 {
		c.Insurance.Sweep.Resolution = 100
	}

	if c.Signaling.WageLow == 0 {
		c.Signaling.WageLow = 1
	}
	if c.Signaling.WageHigh == 0 {
		c.Signaling.WageHigh = 2
	}
	if c.Signaling.UnitCostLow == 0 {
		c.Signaling.UnitCostLow = 1.5
	}
	if c.Signaling.UnitCostHigh == 0 {
		c.Signaling.UnitCostHigh = 1.0
	}
	if c.Signaling.MaxEducation == 0 {
		c.Signaling.MaxEducation = 2.0
	}

	if c.RiskPref.Prob == 0 {
		c.RiskPref.Prob = 0.5
	}
	if c.RiskPref.Outcome1 == 0 {
		c.RiskPref.Outcome1 = 150
	}
	if c.RiskPref.Outcome2 == 0 {
		c.RiskPref.Outcome2 = 50
	}
	if c.RiskPref.Gamma == 0 {
		c.RiskPref.Gamma = 0.5
	}

	if c.Session.StateFile == "" {
		c.Session.StateFile = "data/session.json"
	}
	if c.Feed.Cron == "" {
		c.Feed.Cron = "0 */10 * * * *"
	}
}

// Validate checks that configured parameters are usable. Degenerate-but-valid
// model inputs (e.g. prob_high <= prob_low) are left alone: the modules
// handle those with documented fallbacks.
func (c *Config) Validate() error {
	if c.Lemon.Enabled {
		if c.Lemon.TotalCars <= 0 {
			return fmt.Errorf("lemon.total_cars must be positive")
		}
		if c.Lemon.InitialHighFrac < 0 || c.Lemon.InitialHighFrac > 1 {
			return fmt.Errorf("lemon.initial_high_fraction must be in [0,1]")
		}
		if c.Lemon.MaxPeriods <= 0 {
			return fmt.Errorf("lemon.max_periods must be positive")
		}
	}
	if c.Insurance.Enabled {
		if c.Insurance.BaseTheftProb < 0 || c.Insurance.BaseTheftProb > 1 {
			return fmt.Errorf("insurance.base_theft_prob must be in [0,1]")
		}
		if c.Insurance.DeviceTheftProb >= c.Insurance.BaseTheftProb {
			return fmt.Errorf("insurance.device_theft_prob must be below base_theft_prob")
		}
		if c.Insurance.Sweep.Enabled && c.Insurance.Sweep.Resolution < 2 {
			return fmt.Errorf("insurance.sweep.resolution must be at least 2")
		}
	}
	if c.Contract.Enabled {
		if c.Contract.ProbHigh < 0 || c.Contract.ProbHigh > 1 || c.Contract.ProbLow < 0 || c.Contract.ProbLow > 1 {
			return fmt.Errorf("contract probabilities must be in [0,1]")
		}
	}
	if c.RiskPref.Enabled {
		if c.RiskPref.Prob < 0 || c.RiskPref.Prob > 1 {
			return fmt.Errorf("risk_preference.prob must be in [0,1]")
		}
	}
	return nil
}
