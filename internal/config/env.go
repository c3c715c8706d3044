// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envParser converts the raw value of an environment variable into the
// value stored in the override mapping.
type envParser func(string) (any, error)

// envBinding places one environment variable at a path inside the override
// mapping. The path segments are the JSON field names of [RootConfig].
type envBinding struct {
	path  []string
	parse envParser
}

// envBindings is the declarative table of recognized variables. Adding a
// variable means adding an entry here.
var envBindings = map[string]envBinding{
	"LOG_LEVEL":      {path: []string{"log_level"}, parse: parseString},
	"DATA_DIRECTORY": {path: []string{"data_directory"}, parse: parseString},

	"FIREBASE_PROJECT_ID":    {path: []string{"firebase", "project_id"}, parse: parseString},
	"FIREBASE_USE_EMULATOR":  {path: []string{"firebase", "use_emulator"}, parse: parseBool},
	"FIREBASE_EMULATOR_HOST": {path: []string{"firebase", "emulator_host"}, parse: parseString},

	"RESEARCH_MIN_BACKTEST_DAYS":             {path: []string{"research", "min_backtest_days"}, parse: parseInt},
	"RESEARCH_MAX_STRATEGIES_PER_GENERATION": {path: []string{"research", "max_strategies_per_generation"}, parse: parseInt},
	"RESEARCH_VIRTUAL_BUDGET":                {path: []string{"research", "virtual_budget"}, parse: parseFloat},
	"RESEARCH_RISK_FREE_RATE":                {path: []string{"research", "risk_free_rate"}, parse: parseFloat},

	"MIN_SHARPE_RATIO": {path: []string{"min_sharpe_ratio"}, parse: parseFloat},
	"MAX_DRAWDOWN_PCT": {path: []string{"max_drawdown_pct"}, parse: parseFloat},
	"MIN_WIN_RATE":     {path: []string{"min_win_rate"}, parse: parseFloat},
}

func parseString(s string) (any, error) {
	return s, nil
}

func parseBool(s string) (any, error) {
	return strconv.ParseBool(s)
}

func parseInt(s string) (any, error) {
	return strconv.Atoi(s)
}

// parseFloat rejects NaN and infinities: they cannot be encoded into the
// override mapping.
func parseFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %q is not a finite number", strconv.ErrSyntax, s)
	}

	return f, nil
}

// exchangeCredentials is the shape of the default exchange's credentials in
// the environment (BINANCE_API_KEY, BINANCE_API_SECRET).
type exchangeCredentials struct {
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`
}

// envPrefix returns the variable prefix of an exchange ("binance" -> "BINANCE_").
func envPrefix(exchange string) string {
	return strings.ToUpper(exchange) + "_"
}

// parseExchangeCredentials reads <EXCHANGE>_API_KEY and <EXCHANGE>_API_SECRET
// from environ. Missing variables yield empty credentials.
func parseExchangeCredentials(exchange string, environ map[string]string) (exchangeCredentials, error) {
	creds, err := env.ParseAsWithOptions[exchangeCredentials](env.Options{
		Environment: environ,
		Prefix:      envPrefix(exchange),
	})
	if err != nil {
		return exchangeCredentials{}, fmt.Errorf("error getting %s credentials from env: %w", exchange, err)
	}

	return creds, nil
}

// overridesFromEnv builds the nested override mapping from environ. Only
// variables that are set to a non-empty, parseable value appear in the
// result; everything else is left to the defaults. Values that fail to
// parse are reported through skipped.
func overridesFromEnv(environ map[string]string) (overrides map[string]any, skipped map[string]error) {
	overrides = make(map[string]any)
	skipped = make(map[string]error)

	for _, name := range sortedBindingNames() {
		raw, ok := environ[name]
		if !ok || raw == "" {
			continue
		}

		binding := envBindings[name]
		value, err := binding.parse(raw)
		if err != nil {
			skipped[name] = err
			continue
		}

		setPath(overrides, binding.path, value)
	}

	return overrides, skipped
}

func sortedBindingNames() []string {
	names := make([]string, 0, len(envBindings))
	for name := range envBindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// setPath stores value at path inside m, creating intermediate mappings.
func setPath(m map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// processEnvironment returns the current process environment as a map.
func processEnvironment() map[string]string {
	return env.ToMap(os.Environ())
}

// withDotEnv adds the variables of the given .env files to environ without
// shadowing variables that are already set. Missing files are ignored.
func withDotEnv(environ map[string]string, paths ...string) (map[string]string, error) {
	merged := make(map[string]string, len(environ))
	for k, v := range environ {
		merged[k] = v
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		values, err := godotenv.Read(path)
		if err != nil {
			return environ, fmt.Errorf("error reading env file %s: %w", path, err)
		}

		for k, v := range values {
			if _, exists := merged[k]; !exists {
				merged[k] = v
			}
		}
	}

	return merged, nil
}
