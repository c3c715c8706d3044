package config

import (
	"flag"
	"io"
)

// Flags holds the command-line options of the atere binary.
type Flags struct {
	// ConfigPath is the JSON config file path (-c / -config).
	ConfigPath string
	// EnvFile is an optional .env file (-env-file).
	EnvFile string
	// LogLevel overrides log_level (-log-level).
	LogLevel string
	// DataDirectory overrides data_directory (-data-dir).
	DataDirectory string
}

// ParseFlags parses args (without the program name).
//
// Flags:
//
//	-c/-config json file path with configs
//	-env-file  .env file with additional variables
//	-log-level log level (DEBUG, INFO, WARNING, ERROR)
//	-data-dir  data directory
func ParseFlags(name string, args []string, output io.Writer) (*Flags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "c", DefaultConfigPath, "JSON config file path")
	fs.StringVar(&f.ConfigPath, "config", DefaultConfigPath, "JSON config file path (alias)")
	fs.StringVar(&f.EnvFile, "env-file", "", ".env file with additional variables")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (DEBUG, INFO, WARNING, ERROR)")
	fs.StringVar(&f.DataDirectory, "data-dir", "", "Data directory")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}

// Overrides returns the override mapping of the flags that were given.
func (f *Flags) Overrides() map[string]any {
	overrides := make(map[string]any)
	if f.LogLevel != "" {
		overrides["log_level"] = f.LogLevel
	}
	if f.DataDirectory != "" {
		overrides["data_directory"] = f.DataDirectory
	}

	return overrides
}

// Options converts the flags into Manager options.
func (f *Flags) Options() []Option {
	opts := []Option{
		WithConfigPath(f.ConfigPath),
		WithOverrides(f.Overrides()),
	}
	if f.EnvFile != "" {
		opts = append(opts, WithDotEnv(f.EnvFile))
	}

	return opts
}
