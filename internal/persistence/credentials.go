// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package persistence

import (
	"os"
	"path/filepath"

	"google.golang.org/api/option"

	"github.com/MKhiriev/atere/internal/config"
)

const (
	// EmulatorHostEnv is read by the Firestore client to reach a local
	// emulator instead of the real service.
	EmulatorHostEnv = "FIRESTORE_EMULATOR_HOST"

	serviceAccountFile = "service-account-key.json"
)

// CredentialSource tells where the client credentials come from.
type CredentialSource string

const (
	SourceEmulator CredentialSource = "emulator"
	SourceFile     CredentialSource = "file"
	SourceDefault  CredentialSource = "application-default"
)

// credentials is the outcome of credential discovery.
type credentials struct {
	Source CredentialSource
	// Path is set for SourceFile.
	Path string
}

// DefaultCredentialPaths returns the service-account key locations in
// priority order:
//  1. ./service-account-key.json
//  2. <user config dir>/atere/service-account-key.json
//  3. /etc/atere/service-account-key.json
//
// The first existing file wins.
func DefaultCredentialPaths() []string {
	paths := []string{"./" + serviceAccountFile}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "atere", serviceAccountFile))
	}
	paths = append(paths, filepath.Join("/etc", "atere", serviceAccountFile))

	return paths
}

// findCredentialsFile returns the first path that names an existing
// regular file.
func findCredentialsFile(paths []string) (string, bool) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}

	return "", false
}

// resolveCredentials picks the credential source for cfg.
func resolveCredentials(cfg config.PersistenceConfig, paths []string) credentials {
	if cfg.UseEmulator {
		return credentials{Source: SourceEmulator}
	}

	if path, ok := findCredentialsFile(paths); ok {
		return credentials{Source: SourceFile, Path: path}
	}

	return credentials{Source: SourceDefault}
}

// options returns the client options for the credential source. The
// default source relies on application-default credentials resolution.
func (c credentials) options() []option.ClientOption {
	switch c.Source {
	case SourceEmulator:
		return []option.ClientOption{option.WithoutAuthentication()}
	case SourceFile:
		return []option.ClientOption{option.WithCredentialsFile(c.Path)}
	default:
		return nil
	}
}
