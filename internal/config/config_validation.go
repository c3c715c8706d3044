// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// Validate checks that the assembled configuration is usable for research
// runs. All violations are joined into one error. The manager only logs
// the result; an invalid config is still returned to the caller.
func (cfg *RootConfig) Validate() error {
	var errs []error

	if cfg.MinWinRate < 0 || cfg.MinWinRate > 1 {
		errs = append(errs, fmt.Errorf("%w: min_win_rate %v outside [0, 1]", ErrInvalidThresholds, cfg.MinWinRate))
	}
	if cfg.MaxDrawdownPct <= 0 || cfg.MaxDrawdownPct > 100 {
		errs = append(errs, fmt.Errorf("%w: max_drawdown_pct %v outside (0, 100]", ErrInvalidThresholds, cfg.MaxDrawdownPct))
	}

	if cfg.Research.MinBacktestDays <= 0 {
		errs = append(errs, fmt.Errorf("%w: min_backtest_days must be positive", ErrInvalidResearchConfig))
	}
	if cfg.Research.MaxStrategiesPerGeneration <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_strategies_per_generation must be positive", ErrInvalidResearchConfig))
	}
	if cfg.Research.VirtualBudget <= 0 {
		errs = append(errs, fmt.Errorf("%w: virtual_budget must be positive", ErrInvalidResearchConfig))
	}

	for key, exchange := range cfg.Exchanges {
		if exchange.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s timeout must be positive", ErrInvalidExchangeConfig, key))
		}
	}

	return errors.Join(errs...)
}
