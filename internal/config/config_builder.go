package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
)

// configBuilder layers override mappings and turns them into a RootConfig.
// Later layers win over earlier ones for the keys they set.
type configBuilder struct {
	layers  []map[string]any
	environ map[string]string
}

func newConfigBuilder(environ map[string]string) *configBuilder {
	return &configBuilder{
		layers:  make([]map[string]any, 0, 2),
		environ: environ,
	}
}

func (b *configBuilder) withLayer(overrides map[string]any) *configBuilder {
	if len(overrides) > 0 {
		b.layers = append(b.layers, overrides)
	}
	return b
}

func (b *configBuilder) build() (*RootConfig, error) {
	merged := make(map[string]any)
	for _, layer := range b.layers {
		if err := mergo.Merge(&merged, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return newRootConfig(merged, b.environ)
}

// newRootConfig builds a RootConfig from the defaults and the override
// mapping. It fills the default exchange entry when none is configured and
// creates the data directory.
func newRootConfig(overrides map[string]any, environ map[string]string) (*RootConfig, error) {
	cfg := DefaultRootConfig()
	if err := applyOverrides(&cfg, overrides); err != nil {
		return nil, err
	}

	if err := cfg.ensureExchanges(environ); err != nil {
		return nil, err
	}

	if err := cfg.ensureDataDirectory(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ensureExchanges adds the default exchange entry when the mapping is empty
// and names entries after their key when no name was given.
func (cfg *RootConfig) ensureExchanges(environ map[string]string) error {
	if len(cfg.Exchanges) == 0 {
		creds, err := parseExchangeCredentials(DefaultExchangeName, environ)
		if err != nil {
			return err
		}

		exchange := DefaultExchangeConfig(DefaultExchangeName)
		exchange.APIKey = creds.APIKey
		exchange.APISecret = creds.APISecret
		cfg.Exchanges = map[string]ExchangeConfig{DefaultExchangeName: exchange}
		return nil
	}

	for key, exchange := range cfg.Exchanges {
		if exchange.Name == "" {
			exchange.Name = key
			cfg.Exchanges[key] = exchange
		}
	}

	return nil
}

func (cfg *RootConfig) ensureDataDirectory() error {
	if cfg.DataDirectory == "" {
		return fmt.Errorf("%w: empty path", ErrDataDirectory)
	}

	if err := os.MkdirAll(cfg.DataDirectory, 0o755); err != nil {
		return fmt.Errorf("%w %s: %w", ErrDataDirectory, cfg.DataDirectory, err)
	}

	return nil
}
