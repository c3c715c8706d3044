// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// parseJSON reads the override mapping stored in the JSON file at path.
// A missing file is not an error and yields an empty mapping together with
// [ErrConfigFileNotFound].
func parseJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, ErrConfigFileNotFound
	}
	if err != nil {
		return map[string]any{}, fmt.Errorf("error reading a json file: %w", err)
	}

	overrides := make(map[string]any)
	if err := json.Unmarshal(data, &overrides); err != nil {
		return map[string]any{}, fmt.Errorf("error decoding json configs: %w", err)
	}

	return overrides, nil
}

// applyOverrides decodes the override mapping on top of cfg. Sections that
// are present replace only the fields they name; keys that do not belong to
// [RootConfig] are rejected with [ErrInvalidOverrides].
func applyOverrides(cfg *RootConfig, overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}

	data, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("error encoding overrides: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOverrides, err)
	}

	return nil
}
