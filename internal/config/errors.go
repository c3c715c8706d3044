package config

import "errors"

var (
	// ErrConfigFileNotFound is returned by the file loader when the JSON
	// config file does not exist. The loader treats it as "no overrides".
	ErrConfigFileNotFound = errors.New("config file not found")
	// ErrInvalidOverrides indicates that the merged override mapping could
	// not be decoded into the configuration (unknown key or wrong type).
	ErrInvalidOverrides = errors.New("invalid configuration overrides")
	// ErrDataDirectory indicates that the data directory could not be created.
	ErrDataDirectory = errors.New("cannot create data directory")
)

// Validation errors returned by [RootConfig.Validate].
var (
	ErrInvalidThresholds     = errors.New("invalid performance thresholds")
	ErrInvalidResearchConfig = errors.New("invalid research configuration")
	ErrInvalidExchangeConfig = errors.New("invalid exchange configuration")
)
