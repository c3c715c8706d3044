// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"errors"
	"maps"

	"github.com/MKhiriev/atere/internal/logger"
)

// Manager produces the process configuration and owns the persistence
// backend handle. It holds at most one loaded config.
type Manager struct {
	log *logger.Logger

	configPath string
	dotEnv     []string
	environ    map[string]string
	overrides  map[string]any
	connector  Connector

	config  *RootConfig
	backend Backend
}

// Option customizes a Manager.
type Option func(*Manager)

// WithConfigPath sets the JSON config file path.
func WithConfigPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.configPath = path
		}
	}
}

// WithEnvironment replaces the process environment as the source of
// environment overrides.
func WithEnvironment(environ map[string]string) Option {
	return func(m *Manager) {
		m.environ = maps.Clone(environ)
	}
}

// WithDotEnv adds .env files whose variables fill gaps in the environment.
func WithDotEnv(paths ...string) Option {
	return func(m *Manager) {
		m.dotEnv = append(m.dotEnv, paths...)
	}
}

// WithOverrides layers command-line overrides on top of the env or file
// overrides. See [ParseFlags].
func WithOverrides(overrides map[string]any) Option {
	return func(m *Manager) {
		m.overrides = overrides
	}
}

// WithConnector sets the persistence connector. Without one the manager
// never opens a backend.
func WithConnector(c Connector) Option {
	return func(m *Manager) {
		m.connector = c
	}
}

// NewManager creates a Manager. log must not be nil; use [logger.Nop] to
// silence it.
func NewManager(log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		log:        log.WithComponent("config"),
		configPath: DefaultConfigPath,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Load assembles the configuration and opens the persistence backend.
//
// Sources, highest priority first:
//  1. Command-line overrides ([WithOverrides]).
//  2. Environment variables from the binding table.
//  3. The JSON config file, read only when no environment override is set.
//  4. Defaults.
//
// Load never fails: any error while building the config is logged and the
// all-defaults config is returned instead. Backend failures are logged and
// leave the manager without a backend.
func (m *Manager) Load(ctx context.Context) *RootConfig {
	environ := m.environment()

	cfg, err := m.load(environ)
	if err != nil {
		m.log.Error().Err(err).Msg("error loading configuration, using defaults")
		cfg = m.defaults(environ)
	}

	if err := cfg.Validate(); err != nil {
		m.log.Warn().Err(err).Msg("configuration values out of range")
	}

	m.config = cfg
	m.initPersistence(ctx, cfg.Firebase)

	return cfg
}

func (m *Manager) load(environ map[string]string) (*RootConfig, error) {
	overrides := m.loadFromEnv(environ)
	if len(overrides) == 0 {
		overrides = m.loadFromFile()
	}

	return newConfigBuilder(environ).
		withLayer(overrides).
		withLayer(m.overrides).
		build()
}

// defaults builds the all-defaults config. The data directory is still
// created; when that fails too the config is returned as is.
func (m *Manager) defaults(environ map[string]string) *RootConfig {
	cfg, err := newRootConfig(nil, environ)
	if err == nil {
		return cfg
	}

	m.log.Error().Err(err).Msg("error building default configuration")
	fallback := DefaultRootConfig()
	fallback.Exchanges = map[string]ExchangeConfig{
		DefaultExchangeName: DefaultExchangeConfig(DefaultExchangeName),
	}
	return &fallback
}

// loadFromEnv returns the override mapping built from the set variables of
// the binding table.
func (m *Manager) loadFromEnv(environ map[string]string) map[string]any {
	overrides, skipped := overridesFromEnv(environ)
	for name, err := range skipped {
		m.log.Warn().Err(err).Str("var", name).Msg("ignoring invalid environment value")
	}

	if len(overrides) > 0 {
		m.log.Debug().Int("sections", len(overrides)).Msg("loaded configuration from environment")
	}

	return overrides
}

// loadFromFile returns the override mapping stored in the config file. It
// returns an empty mapping when the file is missing or unreadable.
func (m *Manager) loadFromFile() map[string]any {
	overrides, err := parseJSON(m.configPath)
	switch {
	case errors.Is(err, ErrConfigFileNotFound):
		m.log.Debug().Str("path", m.configPath).Msg("config file not found, using defaults")
	case err != nil:
		m.log.Error().Err(err).Str("path", m.configPath).Msg("error loading config file")
	default:
		m.log.Info().Str("path", m.configPath).Msg("loaded configuration from file")
	}

	return overrides
}

func (m *Manager) environment() map[string]string {
	environ := m.environ
	if environ == nil {
		environ = processEnvironment()
	}

	if len(m.dotEnv) == 0 {
		return environ
	}

	merged, err := withDotEnv(environ, m.dotEnv...)
	if err != nil {
		m.log.Error().Err(err).Msg("error loading .env file")
	}

	return merged
}

// initPersistence opens the backend when a project id is configured.
func (m *Manager) initPersistence(ctx context.Context, cfg PersistenceConfig) {
	if !cfg.Enabled() {
		m.log.Info().Msg("no persistence project configured, running without persistence")
		return
	}

	if m.connector == nil {
		m.log.Warn().Str("project_id", cfg.ProjectID).Msg("no persistence connector available")
		return
	}

	if m.backend != nil {
		if err := m.Close(); err != nil {
			m.log.Warn().Err(err).Msg("error closing previous persistence backend")
		}
	}

	backend, err := m.connector.Connect(ctx, cfg)
	if err != nil {
		m.log.Error().Err(err).Str("project_id", cfg.ProjectID).Msg("error initializing persistence, continuing without it")
		return
	}

	m.backend = backend
	m.log.Info().
		Str("project_id", cfg.ProjectID).
		Bool("emulator", cfg.UseEmulator).
		Msg("persistence initialized")
}

// Config returns the loaded config, or nil before [Manager.Load].
func (m *Manager) Config() *RootConfig {
	return m.config
}

// Backend returns the open backend and whether one exists.
func (m *Manager) Backend() (Backend, bool) {
	return m.backend, m.backend != nil
}

// Close closes the backend, if any.
func (m *Manager) Close() error {
	if m.backend == nil {
		return nil
	}

	err := m.backend.Close()
	m.backend = nil
	return err
}
