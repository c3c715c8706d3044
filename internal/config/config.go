// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"encoding/json"
	"time"
)

// Default values applied when no source provides a field.
const (
	DefaultConfigPath    = "./config/atere_config.json"
	DefaultLogLevel      = "INFO"
	DefaultDataDirectory = "./data"
	DefaultExchangeName  = "binance"

	DefaultExchangeTimeout = 30 * time.Second

	DefaultMinBacktestDays            = 90
	DefaultMaxStrategiesPerGeneration = 50
	DefaultVirtualBudget              = 10000.0
	DefaultRiskFreeRate               = 0.02

	DefaultStrategiesCollection  = "strategies"
	DefaultMarketDataCollection  = "market_data"
	DefaultPerformanceCollection = "performance"
	DefaultEmulatorHost          = "localhost:8080"

	DefaultMinSharpeRatio = 1.0
	DefaultMaxDrawdownPct = 20.0
	DefaultMinWinRate     = 0.55
)

// RootConfig is the fully assembled configuration snapshot for one process
// run. It is built once by [Manager.Load] and treated as read-only
// afterwards.
type RootConfig struct {
	// LogLevel is the textual log level ("DEBUG", "INFO", "WARNING", ...).
	LogLevel string `json:"log_level"`

	// DataDirectory is the local directory for research artifacts. It is
	// created, with parents, when the config is constructed.
	DataDirectory string `json:"data_directory"`

	// Exchanges maps an exchange name to its connection settings.
	Exchanges map[string]ExchangeConfig `json:"exchanges"`

	// Research holds the research budget parameters.
	Research ResearchConfig `json:"research"`

	// Firebase holds the persistence-backend settings.
	Firebase PersistenceConfig `json:"firebase"`

	// Performance thresholds a strategy has to meet.
	MinSharpeRatio float64 `json:"min_sharpe_ratio"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	MinWinRate     float64 `json:"min_win_rate"`
}

// ExchangeConfig holds the connection settings of one exchange.
type ExchangeConfig struct {
	Name            string   `json:"name"`
	APIKey          string   `json:"api_key"`
	APISecret       string   `json:"api_secret"`
	Timeout         Duration `json:"timeout"`
	EnableRateLimit bool     `json:"enable_rate_limit"`

	// Sandbox selects the exchange's test environment. On by default.
	Sandbox bool `json:"sandbox"`
}

// ResearchConfig holds numeric research parameters.
type ResearchConfig struct {
	MinBacktestDays            int     `json:"min_backtest_days"`
	MaxStrategiesPerGeneration int     `json:"max_strategies_per_generation"`
	VirtualBudget              float64 `json:"virtual_budget"`
	RiskFreeRate               float64 `json:"risk_free_rate"`
}

// PersistenceConfig holds the document-store settings. An empty ProjectID
// disables the backend.
type PersistenceConfig struct {
	ProjectID             string `json:"project_id"`
	StrategiesCollection  string `json:"strategies_collection"`
	MarketDataCollection  string `json:"market_data_collection"`
	PerformanceCollection string `json:"performance_collection"`
	UseEmulator           bool   `json:"use_emulator"`
	EmulatorHost          string `json:"emulator_host"`
}

// Enabled reports whether a backend connection should be attempted.
func (p PersistenceConfig) Enabled() bool {
	return p.ProjectID != ""
}

// DefaultRootConfig returns the configuration used when no source provides
// any value. The exchange mapping is left empty; [newRootConfig] fills it.
func DefaultRootConfig() RootConfig {
	return RootConfig{
		LogLevel:      DefaultLogLevel,
		DataDirectory: DefaultDataDirectory,
		Research: ResearchConfig{
			MinBacktestDays:            DefaultMinBacktestDays,
			MaxStrategiesPerGeneration: DefaultMaxStrategiesPerGeneration,
			VirtualBudget:              DefaultVirtualBudget,
			RiskFreeRate:               DefaultRiskFreeRate,
		},
		Firebase: PersistenceConfig{
			StrategiesCollection:  DefaultStrategiesCollection,
			MarketDataCollection:  DefaultMarketDataCollection,
			PerformanceCollection: DefaultPerformanceCollection,
			EmulatorHost:          DefaultEmulatorHost,
		},
		MinSharpeRatio: DefaultMinSharpeRatio,
		MaxDrawdownPct: DefaultMaxDrawdownPct,
		MinWinRate:     DefaultMinWinRate,
	}
}

// DefaultExchangeConfig returns an exchange entry in sandbox mode with rate
// limiting on and no credentials.
func DefaultExchangeConfig(name string) ExchangeConfig {
	return ExchangeConfig{
		Name:            name,
		Timeout:         Duration(DefaultExchangeTimeout),
		EnableRateLimit: true,
		Sandbox:         true,
	}
}

// UnmarshalJSON decodes an exchange entry on top of [DefaultExchangeConfig],
// so omitted fields keep their safe defaults. Unknown fields are rejected.
func (e *ExchangeConfig) UnmarshalJSON(b []byte) error {
	type plain ExchangeConfig
	p := plain(DefaultExchangeConfig(""))

	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&p); err != nil {
		return err
	}

	*e = ExchangeConfig(p)
	return nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" or from a number of milliseconds, the unit
// exchange clients use for request timeouts.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value * float64(time.Millisecond)))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
